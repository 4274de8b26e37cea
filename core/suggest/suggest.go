// Package suggest expands partial or ambiguous input into valid references.
package suggest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/FocuswithJustin/versefinder/core/canon"
	"github.com/FocuswithJustin/versefinder/core/grammar"
	"github.com/FocuswithJustin/versefinder/core/reference"
)

// Hit is a phrase-search result. Book is the USFM book code.
type Hit struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

// PhraseSearcher finds verses containing a phrase.
type PhraseSearcher interface {
	Search(ctx context.Context, phrase string) ([]Hit, error)
}

// Validator normalizes references. *reference.Normalizer satisfies it.
type Validator interface {
	Normalize(query string) (reference.Address, bool)
}

// Generator produces reference suggestions.
type Generator struct {
	grammar   reference.Grammar
	validator Validator
	searcher  PhraseSearcher
}

// New creates a Generator. A nil grammar selects the default parser and a
// nil validator a Normalizer over that grammar. A nil searcher disables the
// phrase-search fallback.
func New(g reference.Grammar, v Validator, s PhraseSearcher) *Generator {
	if g == nil {
		g = grammar.New()
	}
	if v == nil {
		v = reference.NewNormalizer(g)
	}
	return &Generator{grammar: g, validator: v, searcher: s}
}

// FormatHit renders a hit as "Name C:V". ok is false for an unknown book.
func FormatHit(h Hit) (string, bool) {
	b, ok := canon.ByUSFM(h.Book)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s %d:%d", b.Name, h.Chapter, h.Verse), true
}

// Suggest returns the valid references input may mean. Input without any
// book falls back to phrase search, keeping the searcher's order; otherwise
// every plausible book is tried with the parsed chapter and verse and the
// survivors are sorted. The result is never nil; the only error is a
// failed phrase search.
func (g *Generator) Suggest(ctx context.Context, input string) ([]string, error) {
	out := []string{}
	if strings.TrimSpace(input) == "" {
		return out, nil
	}

	res := g.grammar.Parse(input)
	if len(res.Books) == 0 {
		return g.phrase(ctx, input)
	}

	if _, ok := g.validator.Normalize(input); !ok {
		return out, nil
	}
	pass, ok := res.First()
	if !ok {
		return out, nil
	}

	seen := make(map[string]bool)
	for _, book := range res.Books {
		candidate := fmt.Sprintf("%s %d", canon.Name(book), pass.Start.Chapter)
		if pass.RequestedVerse > 0 {
			candidate += fmt.Sprintf(":%d", pass.RequestedVerse)
		}
		if seen[candidate] || !g.valid(candidate) {
			continue
		}
		seen[candidate] = true
		out = append(out, candidate)
	}
	sort.Strings(out)
	return out, nil
}

func (g *Generator) phrase(ctx context.Context, input string) ([]string, error) {
	out := []string{}
	if g.searcher == nil {
		return out, nil
	}

	hits, err := g.searcher.Search(ctx, strings.TrimSpace(input))
	if err != nil {
		return nil, fmt.Errorf("phrase search: %w", err)
	}

	seen := make(map[string]bool)
	for _, h := range hits {
		candidate, ok := FormatHit(h)
		if !ok || seen[candidate] || !g.valid(candidate) {
			continue
		}
		seen[candidate] = true
		out = append(out, candidate)
	}
	return out, nil
}

// valid reports whether candidate normalizes without its verse being
// pulled back into range.
func (g *Generator) valid(candidate string) bool {
	a, ok := g.validator.Normalize(candidate)
	return ok && !a.Clamped
}
