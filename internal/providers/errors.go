package providers

import (
	"errors"

	apperrors "github.com/FocuswithJustin/versefinder/core/errors"
)

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// Fail wraps a provider call failure in a ProviderError carrying the HTTP
// status when there is one.
func Fail(provider, operation string, err error) error {
	if err == nil {
		return nil
	}
	return apperrors.NewProvider(provider, operation, StatusCode(err), err)
}
