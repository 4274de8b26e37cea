package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// captureLogOutput captures log output for testing by temporarily
// redirecting the logger to write to a buffer
func captureLogOutput(f func()) string {
	var buf bytes.Buffer

	oldLogger := defaultLogger
	defaultLogger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	f()

	defaultLogger = oldLogger
	return buf.String()
}

// captureLogOutputWithInit reinitializes the logger against a buffer so the
// InitLogger handler options are exercised.
func captureLogOutputWithInit(level Level, format Format, f func()) string {
	var buf bytes.Buffer
	InitLoggerWithWriter(&buf, level, format)
	f()
	InitLogger(LevelInfo, FormatJSON)
	return buf.String()
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		format   Format
		logFunc  func()
		contains []string
		excludes []string
	}{
		{
			name:     "json info",
			level:    LevelInfo,
			format:   FormatJSON,
			logFunc:  func() { Info("resolved", "key", "John.3") },
			contains: []string{`"msg":"resolved"`, `"key":"John.3"`},
		},
		{
			name:     "text info",
			level:    LevelInfo,
			format:   FormatText,
			logFunc:  func() { Info("resolved", "key", "John.3") },
			contains: []string{"msg=resolved", "key=John.3"},
		},
		{
			name:     "debug suppressed at warn",
			level:    LevelWarn,
			format:   FormatJSON,
			logFunc:  func() { Debug("hidden"); Warn("shown") },
			contains: []string{"shown"},
			excludes: []string{"hidden"},
		},
		{
			name:     "error level",
			level:    LevelError,
			format:   FormatJSON,
			logFunc:  func() { Warn("hidden"); Error("boom") },
			contains: []string{"boom"},
			excludes: []string{"hidden"},
		},
		{
			name:     "unknown level falls back to info",
			level:    Level(99),
			format:   FormatJSON,
			logFunc:  func() { Debug("hidden"); Info("shown") },
			contains: []string{"shown"},
			excludes: []string{"hidden"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutputWithInit(tt.level, tt.format, tt.logFunc)
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q: %s", want, output)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(output, unwanted) {
					t.Errorf("output contains %q: %s", unwanted, output)
				}
			}
		})
	}
}

func TestReplaceAttrTimestamp(t *testing.T) {
	output := captureLogOutputWithInit(LevelInfo, FormatJSON, func() { Info("ts") })
	// RFC3339 without fractional seconds
	i := strings.Index(output, `"time":"`)
	if i < 0 {
		t.Fatalf("no time field: %s", output)
	}
	value := output[i+len(`"time":"`):]
	value = value[:strings.Index(value, `"`)]
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		t.Errorf("time %q is not RFC3339: %v", value, err)
	}
	if strings.Contains(value, ".") {
		t.Errorf("time %q carries fractional seconds", value)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if got, err := ParseFormat("text"); err != nil || got != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", got, err)
	}
	if got, err := ParseFormat(""); err != nil || got != FormatJSON {
		t.Errorf("ParseFormat(\"\") = %v, %v", got, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) error = nil, want error")
	}
}

func TestGetLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil")
	}
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("GetRequestID(empty) = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "req-123")
	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("GetRequestID() = %q, want %q", got, "req-123")
	}

	// A plain string key must not collide with ContextKey.
	ctx = context.WithValue(context.Background(), "request_id", "wrong") //nolint:staticcheck
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("GetRequestID(string key) = %q, want empty", got)
	}
}

func TestLoggerFromContext(t *testing.T) {
	output := captureLogOutput(func() {
		LoggerFromContext(WithRequestID(context.Background(), "req-456")).Info("with id")
	})
	if !strings.Contains(output, `"request_id":"req-456"`) {
		t.Errorf("output missing request id: %s", output)
	}

	output = captureLogOutput(func() {
		LoggerFromContext(context.Background()).Info("without id")
	})
	if strings.Contains(output, "request_id") {
		t.Errorf("output has request id: %s", output)
	}
}

func TestLoggingFunctions(t *testing.T) {
	ctx := WithRequestID(context.Background(), "ctx-1")
	tests := []struct {
		name  string
		fn    func()
		level string
	}{
		{"Debug", func() { Debug("m") }, "DEBUG"},
		{"Info", func() { Info("m") }, "INFO"},
		{"Warn", func() { Warn("m") }, "WARN"},
		{"Error", func() { Error("m") }, "ERROR"},
		{"DebugContext", func() { DebugContext(ctx, "m") }, "DEBUG"},
		{"InfoContext", func() { InfoContext(ctx, "m") }, "INFO"},
		{"WarnContext", func() { WarnContext(ctx, "m") }, "WARN"},
		{"ErrorContext", func() { ErrorContext(ctx, "m") }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(tt.fn)
			if !strings.Contains(output, `"level":"`+tt.level+`"`) {
				t.Errorf("output missing level %s: %s", tt.level, output)
			}
			if strings.HasSuffix(tt.name, "Context") && !strings.Contains(output, "ctx-1") {
				t.Errorf("output missing request id: %s", output)
			}
		})
	}
}

func TestDomainHelpers(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		fn       func()
		contains []string
	}{
		{
			name: "ProviderRequest",
			fn: func() {
				ProviderRequest(ctx, "GET", "api.example.com", "/v1/bibles", 200, 150*time.Millisecond, "provider", "youversion")
			},
			contains: []string{`"msg":"provider_request"`, `"status_code":200`, `"duration_ms":150`, `"provider":"youversion"`},
		},
		{
			name:     "ProviderError",
			fn:       func() { ProviderError(ctx, "apibible", "fetch passage", errors.New("timeout")) },
			contains: []string{`"msg":"provider_error"`, `"provider":"apibible"`, `"error":"timeout"`},
		},
		{
			name:     "QueryResolved",
			fn:       func() { QueryResolved(ctx, "Jn 3:16", "John.3", true) },
			contains: []string{`"msg":"query_resolved"`, `"key":"John.3"`, `"matched":true`},
		},
		{
			name:     "IndexEvent",
			fn:       func() { IndexEvent("load", "verses.db", 31102) },
			contains: []string{`"msg":"index_event"`, `"count":31102`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(tt.fn)
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q: %s", want, output)
				}
			}
		})
	}
}

func TestTransportStampsRequestID(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(nil)}

	var resp *http.Response
	output := captureLogOutput(func() {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/passages", nil)
		var err error
		resp, err = client.Do(req)
		if err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		resp.Body.Close()
		if req.Header.Get(RequestIDHeader) != "" {
			t.Error("transport modified the caller's request")
		}
	})

	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusTeapot)
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("request id %q is not a uuid: %v", seen, err)
	}
	if !strings.Contains(output, `"path":"/v1/passages"`) || !strings.Contains(output, `"status_code":418`) {
		t.Errorf("output missing request fields: %s", output)
	}
}

func TestTransportKeepsContextRequestID(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
	}))
	defer srv.Close()

	ctx := WithRequestID(context.Background(), "caller-id")
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	captureLogOutput(func() {
		resp, err := (&http.Client{Transport: &Transport{}}).Do(req)
		if err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		resp.Body.Close()
	})

	if seen != "caller-id" {
		t.Errorf("request id = %q, want %q", seen, "caller-id")
	}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial failed")
}

func TestTransportLogsFailure(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "http://example.invalid/x", nil)
	output := captureLogOutput(func() {
		if _, err := NewTransport(failingTransport{}).RoundTrip(req); err == nil {
			t.Error("RoundTrip() error = nil, want error")
		}
	})
	if !strings.Contains(output, "provider_request_failed") || !strings.Contains(output, "dial failed") {
		t.Errorf("output missing failure: %s", output)
	}
}
