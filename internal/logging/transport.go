package logging

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request id on outbound calls.
const RequestIDHeader = "X-Request-ID"

// Transport is an http.RoundTripper that stamps every outbound request with
// a request id and logs it once the response headers arrive.
type Transport struct {
	// Base performs the request. http.DefaultTransport when nil.
	Base http.RoundTripper
}

// NewTransport wraps base.
func NewTransport(base http.RoundTripper) *Transport {
	return &Transport{Base: base}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	ctx := req.Context()
	requestID := GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = WithRequestID(ctx, requestID)
	}

	// RoundTrippers must not modify the caller's request.
	req = req.Clone(ctx)
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		LoggerFromContext(ctx).Warn("provider_request_failed",
			"method", req.Method,
			"host", req.URL.Host,
			"path", req.URL.Path,
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	ProviderRequest(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, duration)
	return resp, nil
}
