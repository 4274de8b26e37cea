// Package youversion fetches flat per-verse passages from the YouVersion
// Platform API.
package youversion

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/FocuswithJustin/versefinder/core/assemble"
	"github.com/FocuswithJustin/versefinder/internal/logging"
	"github.com/FocuswithJustin/versefinder/internal/providers"
)

// Name identifies the provider in errors and logs.
const Name = "youversion"

// AppKeyHeader carries the platform app key.
const AppKeyHeader = "X-YVP-App-Key"

// Content formats.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Config configures a Client.
type Config struct {
	BaseURL     string
	AppKey      string
	Format      string // text (default) or html
	Concurrency int    // parallel verse fetches, default 8
	HTTP        *providers.Client
}

// Client is a YouVersion Platform client.
type Client struct {
	http        *providers.Client
	baseURL     string
	appKey      string
	format      string
	concurrency int
}

// New creates a Client.
func New(cfg Config) *Client {
	c := &Client{
		http:        cfg.HTTP,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		appKey:      cfg.AppKey,
		format:      strings.ToLower(cfg.Format),
		concurrency: cfg.Concurrency,
	}
	if c.http == nil {
		c.http = providers.NewClient()
	}
	if c.format != FormatHTML {
		c.format = FormatText
	}
	if c.concurrency < 1 {
		c.concurrency = 8
	}
	return c
}

type passageResponse struct {
	ID        string  `json:"id"`
	Content   *string `json:"content"`
	Reference string  `json:"reference"`
}

// FetchPassage fetches a single verse by location token ("JHN.3.16"). A
// response without content is a missing verse, not an error.
func (c *Client) FetchPassage(ctx context.Context, bibleID, token string) (assemble.FlatPassage, error) {
	u := fmt.Sprintf("%s/v1/bibles/%s/passages/%s?format=%s",
		c.baseURL, url.PathEscape(bibleID), url.PathEscape(token), c.format)

	var resp passageResponse
	if err := c.http.GetJSON(ctx, u, map[string]string{AppKeyHeader: c.appKey}, &resp); err != nil {
		return assemble.FlatPassage{}, providers.Fail(Name, "fetch passage "+token, err)
	}

	if resp.Content == nil {
		return assemble.FlatPassage{}, nil
	}

	text := *resp.Content
	if c.format == FormatHTML {
		stripped, err := StripHTML(text)
		if err != nil {
			return assemble.FlatPassage{}, providers.Fail(Name, "decode passage "+token, err)
		}
		text = stripped
	}
	return assemble.FlatPassage{Text: text, Present: true}, nil
}

// FetchChapter fetches every token concurrently and returns the passages in
// token order. The first failure cancels the rest and fails the call.
func (c *Client) FetchChapter(ctx context.Context, bibleID string, tokens []string) ([]assemble.FlatPassage, error) {
	passages := make([]assemble.FlatPassage, len(tokens))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.concurrency)
	for i, token := range tokens {
		eg.Go(func() error {
			p, err := c.FetchPassage(egCtx, bibleID, token)
			if err != nil {
				return err
			}
			passages[i] = p
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		logging.ProviderError(ctx, Name, "fetch chapter", err, "bible_id", bibleID, "verses", len(tokens))
		return nil, err
	}
	return passages, nil
}
