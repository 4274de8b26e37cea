package youversion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/FocuswithJustin/versefinder/core/assemble"
	apperrors "github.com/FocuswithJustin/versefinder/core/errors"
)

// fakePlatform serves /v1/bibles/{id}/passages/{token}. A token mapped to
// nil content is served without content; an unknown token is a 404.
func fakePlatform(t *testing.T, verses map[string]*string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(AppKeyHeader); got != "app-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/v1/bibles/"), "/")
		if len(parts) != 3 || parts[1] != "passages" {
			http.NotFound(w, r)
			return
		}
		content, ok := verses[parts[2]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		resp := map[string]any{"id": parts[2], "reference": parts[2]}
		if content != nil {
			resp["content"] = *content
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func str(s string) *string { return &s }

func TestFetchPassage(t *testing.T) {
	srv := fakePlatform(t, map[string]*string{
		"JHN.3.16": str("For God so loved the world"),
		"JHN.3.17": nil,
	})
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/", AppKey: "app-key"})

	p, err := c.FetchPassage(context.Background(), "1", "JHN.3.16")
	if err != nil {
		t.Fatalf("FetchPassage() error = %v", err)
	}
	if want := (assemble.FlatPassage{Text: "For God so loved the world", Present: true}); p != want {
		t.Errorf("FetchPassage() = %+v, want %+v", p, want)
	}

	p, err = c.FetchPassage(context.Background(), "1", "JHN.3.17")
	if err != nil {
		t.Fatalf("FetchPassage() error = %v", err)
	}
	if !p.Missing() {
		t.Errorf("FetchPassage() = %+v, want missing", p)
	}
}

func TestFetchPassageError(t *testing.T) {
	srv := fakePlatform(t, nil)
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL, AppKey: "wrong"}).FetchPassage(context.Background(), "1", "JHN.3.16")
	if !errors.Is(err, apperrors.ErrProvider) {
		t.Fatalf("FetchPassage() error = %v, want provider error", err)
	}
	var pe *apperrors.ProviderError
	if !errors.As(err, &pe) || pe.StatusCode != http.StatusUnauthorized || pe.Provider != Name {
		t.Errorf("ProviderError = %+v", pe)
	}
}

func TestFetchPassageHTML(t *testing.T) {
	srv := fakePlatform(t, map[string]*string{
		"GEN.1.1": str(`<div><p><span class="yv-vlbl">1</span>In the beginning<br/>God created</p><sup>a</sup></div>`),
	})
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, AppKey: "app-key", Format: "HTML"})
	p, err := c.FetchPassage(context.Background(), "1", "GEN.1.1")
	if err != nil {
		t.Fatalf("FetchPassage() error = %v", err)
	}
	if p.Text != "In the beginning God created" {
		t.Errorf("Text = %q, want %q", p.Text, "In the beginning God created")
	}
}

func TestFetchChapter(t *testing.T) {
	verses := map[string]*string{
		"JUD.1.1": str("Jude, a servant"),
		"JUD.1.2": nil,
		"JUD.1.3": str("Beloved"),
	}
	srv := fakePlatform(t, verses)
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, AppKey: "app-key", Concurrency: 2})
	got, err := c.FetchChapter(context.Background(), "1", []string{"JUD.1.1", "JUD.1.2", "JUD.1.3"})
	if err != nil {
		t.Fatalf("FetchChapter() error = %v", err)
	}
	want := []assemble.FlatPassage{
		{Text: "Jude, a servant", Present: true},
		{},
		{Text: "Beloved", Present: true},
	}
	if len(got) != len(want) {
		t.Fatalf("len(FetchChapter()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("passage %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	assembled := assemble.AssembleFlat(got)
	if len(assembled) != 2 {
		t.Errorf("AssembleFlat() = %d verses, want 2", len(assembled))
	}
}

func TestFetchChapterFailsOnAnyError(t *testing.T) {
	srv := fakePlatform(t, map[string]*string{"JUD.1.1": str("ok")})
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, AppKey: "app-key"})
	_, err := c.FetchChapter(context.Background(), "1", []string{"JUD.1.1", "JUD.1.2"})
	if !errors.Is(err, apperrors.ErrProvider) {
		t.Errorf("FetchChapter() error = %v, want provider error", err)
	}
}

func TestFetchChapterConcurrencyLimit(t *testing.T) {
	var inflight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		_, _ = w.Write([]byte(`{"content":"x"}`))
	}))
	defer srv.Close()

	tokens := make([]string, 20)
	for i := range tokens {
		tokens[i] = "PSA.119." + strconv.Itoa(i+1)
	}
	c := New(Config{BaseURL: srv.URL, AppKey: "app-key", Concurrency: 3})
	if _, err := c.FetchChapter(context.Background(), "1", tokens); err != nil {
		t.Fatalf("FetchChapter() error = %v", err)
	}
	if p := peak.Load(); p > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", p)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"<p>one</p><p>two</p>", "one two"},
		{`<span class="note">x</span>kept`, "kept"},
		{"<h3>Heading</h3>body", "body"},
	}
	for _, tt := range tests {
		got, err := StripHTML(tt.in)
		if err != nil {
			t.Fatalf("StripHTML(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
