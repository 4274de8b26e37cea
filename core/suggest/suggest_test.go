package suggest

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/FocuswithJustin/versefinder/core/reference"
)

type fakeSearcher struct {
	hits   []Hit
	err    error
	called bool
}

func (f *fakeSearcher) Search(_ context.Context, _ string) ([]Hit, error) {
	f.called = true
	return f.hits, f.err
}

func TestSuggestBookExpansion(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Jo 3", []string{"Job 3", "Joel 3", "John 3", "Jonah 3", "Joshua 3"}},
		{"Jo 3:20", []string{"Job 3:20", "Joel 3:20", "John 3:20"}},
		{"John 3:16", []string{"John 3:16"}},
		{"Jude 5", []string{"Jude 1:5"}},
		{"Genesis 99", []string{}},
		{"John", []string{}},
	}

	searcher := &fakeSearcher{}
	g := New(nil, nil, searcher)
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := g.Suggest(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Suggest() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Suggest(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
	if searcher.called {
		t.Error("phrase search used for structured input")
	}
}

func TestSuggestPhraseFallback(t *testing.T) {
	searcher := &fakeSearcher{hits: []Hit{
		{Book: "JHN", Chapter: 3, Verse: 16},
		{Book: "GEN", Chapter: 99, Verse: 1},
		{Book: "XYZ", Chapter: 1, Verse: 1},
		{Book: "JHN", Chapter: 3, Verse: 99},
		{Book: "1JN", Chapter: 4, Verse: 8},
		{Book: "JHN", Chapter: 3, Verse: 16},
	}}

	got, err := New(nil, nil, searcher).Suggest(context.Background(), "God so loved")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	want := []string{"John 3:16", "1 John 4:8"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %v, want %v", got, want)
	}

	n := reference.NewNormalizer(nil)
	for _, s := range got {
		if _, ok := n.Normalize(s); !ok {
			t.Errorf("suggestion %q does not normalize", s)
		}
	}
}

func TestSuggestPhraseError(t *testing.T) {
	boom := errors.New("index closed")
	_, err := New(nil, nil, &fakeSearcher{err: boom}).Suggest(context.Background(), "God so loved")
	if !errors.Is(err, boom) {
		t.Errorf("Suggest() error = %v, want %v", err, boom)
	}
}

func TestSuggestEmpty(t *testing.T) {
	g := New(nil, nil, nil)
	for _, input := range []string{"", "  ", "God so loved"} {
		got, err := g.Suggest(context.Background(), input)
		if err != nil {
			t.Fatalf("Suggest(%q) error = %v", input, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Suggest(%q) = %#v, want empty non-nil slice", input, got)
		}
	}
}

func TestFormatHit(t *testing.T) {
	if got, ok := FormatHit(Hit{Book: "SNG", Chapter: 2, Verse: 1}); !ok || got != "Song of Solomon 2:1" {
		t.Errorf("FormatHit(SNG) = %q, %v", got, ok)
	}
	if _, ok := FormatHit(Hit{Book: "XYZ", Chapter: 1, Verse: 1}); ok {
		t.Error("FormatHit(XYZ) ok = true, want false")
	}
}
