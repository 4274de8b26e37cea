// Package reference normalizes natural-language scripture references into
// chapter-bounded addresses and maps them onto provider location tokens.
package reference

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/versefinder/core/canon"
	"github.com/FocuswithJustin/versefinder/core/grammar"
)

// Grammar parses natural-language references. *grammar.Parser satisfies it.
type Grammar interface {
	Parse(text string) *grammar.Result
	ParseWith(text string, c grammar.Compaction) *grammar.Result
}

// Address is a normalized, chapter-bounded reference.
type Address struct {
	// Book is the canonical OSIS book id.
	Book canon.BookID `json:"book"`

	// Chapter is the 1-based chapter number.
	Chapter int `json:"chapter"`

	// VersesInChapter is the true length of the chapter.
	VersesInChapter int `json:"verses_in_chapter"`

	// SelectedVerse is the zero-based index of the requested verse, 0 when
	// no verse was given.
	SelectedVerse int `json:"selected_verse"`

	// VerseGiven reports whether the query named a verse.
	VerseGiven bool `json:"verse_given"`

	// Clamped reports whether the given verse lay past the end of the
	// chapter and was pulled back to the last verse.
	Clamped bool `json:"clamped,omitempty"`
}

// Key returns the chapter key, e.g. "John.3".
func (a Address) Key() string {
	return fmt.Sprintf("%s.%d", a.Book, a.Chapter)
}

// String returns the display form, e.g. "John 3:16" or "Psalms 119".
func (a Address) String() string {
	s := fmt.Sprintf("%s %d", canon.Name(a.Book), a.Chapter)
	if a.VerseGiven {
		s += ":" + strconv.Itoa(a.SelectedVerse+1)
	}
	return s
}

// Normalizer resolves queries into Addresses.
type Normalizer struct {
	grammar Grammar
}

// NewNormalizer creates a Normalizer. A nil grammar selects the default
// reference parser.
func NewNormalizer(g Grammar) *Normalizer {
	if g == nil {
		g = grammar.New()
	}
	return &Normalizer{grammar: g}
}

// Normalize resolves query into an Address. ok is false when the query
// names no existing book and chapter.
func (n *Normalizer) Normalize(query string) (Address, bool) {
	if strings.TrimSpace(query) == "" {
		return Address{}, false
	}

	pass, ok := n.grammar.Parse(query).First()
	if !ok || pass.Start.Chapter == 0 || !pass.Valid {
		return Address{}, false
	}

	// The chapter alone, expanded verse by verse, gives its true length.
	chapter := fmt.Sprintf("%s.%d", pass.Start.Book, pass.Start.Chapter)
	last, ok := lastVerse(n.grammar.ParseWith(chapter, grammar.CompactionBCV).OSIS())
	if !ok {
		return Address{}, false
	}

	addr := Address{
		Book:            pass.Start.Book,
		Chapter:         pass.Start.Chapter,
		VersesInChapter: last,
		Clamped:         pass.Clamped(),
	}
	if pass.Start.Verse > 0 {
		addr.VerseGiven = true
		addr.SelectedVerse = min(pass.Start.Verse, last) - 1
	}
	return addr, true
}

// Valid reports whether query normalizes.
func (n *Normalizer) Valid(query string) bool {
	_, ok := n.Normalize(query)
	return ok
}

// lastVerse reads the upper verse bound out of an OSIS range such as
// "Gen.1.1-Gen.1.31" or a single verse "Obad.1.1".
func lastVerse(osis string) (int, bool) {
	if osis == "" {
		return 0, false
	}
	end := osis
	if parts := strings.Split(osis, "-"); len(parts) == 2 {
		end = parts[1]
	}
	fields := strings.Split(end, ".")
	if len(fields) != 3 {
		return 0, false
	}
	v, err := strconv.Atoi(fields[2])
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}
