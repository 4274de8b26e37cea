package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"relative", "data/verses.db", nil},
		{"absolute", "/var/lib/versefinder/verses.db", nil},
		{"empty", "", ErrEmptyPath},
		{"too long", strings.Repeat("a", MaxPathLength+1), ErrPathTooLong},
		{"null byte", "verses\x00.db", ErrInvalidCharacter},
		{"control char", "verses\n.db", ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePath(%q) error = %v, want nil", tt.path, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePath(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"https://api.youversion.com", false},
		{"http://localhost:8080/base", false},
		{"", true},
		{"ftp://example.com", true},
		{"https://", true},
		{"https://example.com/?key=x", true},
		{"https://example.com/#frag", true},
		{"://bad", true},
	}

	for _, tt := range tests {
		err := ValidateBaseURL(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateBaseURL(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidURL) {
			t.Errorf("ValidateBaseURL(%q) error = %v, want ErrInvalidURL", tt.raw, err)
		}
	}
}
