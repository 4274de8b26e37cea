// Package validation provides input validation for configuration values:
// file paths and provider base URLs.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// MaxPathLength is the maximum allowed path length.
const MaxPathLength = 4096

// Common validation errors.
var (
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrInvalidURL       = errors.New("invalid URL")
)

// ValidatePath performs path validation without requiring a base directory.
// It checks length limits and invalid characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}

	return nil
}

// ValidateBaseURL checks that raw is an absolute http or https URL with a
// host and no query or fragment.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("%w: query or fragment not allowed", ErrInvalidURL)
	}
	return nil
}
