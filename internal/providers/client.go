// Package providers holds the HTTP transport shared by the upstream content
// provider clients.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/FocuswithJustin/versefinder/internal/logging"
)

// maxBodySize caps a provider response body. A whole chapter of tagged
// content is well under this.
const maxBodySize = 16 << 20

// DefaultUserAgent identifies versefinder to upstream providers.
const DefaultUserAgent = "versefinder/1.0"

// Client performs provider GET requests.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// HTTPError represents an HTTP error response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string // leading part of the response body, for diagnostics
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %s", e.Status)
}

// IsNotFound returns true if this is a 404 error.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client. Its transport is
// wrapped with request logging.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		clone := *hc
		c.httpClient = &clone
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new provider client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if _, wrapped := c.httpClient.Transport.(*logging.Transport); !wrapped {
		c.httpClient.Transport = logging.NewTransport(c.httpClient.Transport)
	}
	return c
}

// Get fetches url with the given extra headers and returns the body.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL")
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("unsupported URL scheme: %s", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(snippet)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return data, nil
}

// GetJSON fetches url and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	h := map[string]string{"Accept": "application/json"}
	for k, v := range headers {
		h[k] = v
	}

	data, err := c.Get(ctx, url, h)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
