// Package canon provides the canonical book table used to bound scripture
// references: OSIS book ids, display names, USFM book codes, common
// abbreviations and per-chapter verse counts (KJV versification).
//
// The table is read-only and built once at init. All lookups are safe for
// concurrent use.
package canon

import (
	"strings"
)

// BookID is the canonical OSIS book identifier (e.g., "Gen", "Ps", "1John").
type BookID string

// Book describes a single book of the canon.
type Book struct {
	// ID is the OSIS book id.
	ID BookID

	// Name is the display name (e.g., "Song of Solomon").
	Name string

	// USFM is the provider-facing three-character book code (e.g., "SNG").
	USFM string

	// Aliases are extra abbreviations accepted in user input.
	Aliases []string

	// Chapters holds the verse count for each chapter.
	Chapters []int
}

var (
	byID    = make(map[BookID]*Book, len(books))
	byUSFM  = make(map[string]*Book, len(books))
	byAlias = make(map[string]*Book, len(books)*4)
	order   = make(map[BookID]int, len(books))
)

func init() {
	for i := range books {
		b := &books[i]
		byID[b.ID] = b
		byUSFM[b.USFM] = b
		order[b.ID] = i

		for _, key := range b.Keys() {
			if _, exists := byAlias[key]; !exists {
				byAlias[key] = b
			}
		}
	}
}

// Keys returns every normalized lookup key for the book: its name, OSIS id,
// USFM code and aliases.
func (b *Book) Keys() []string {
	keys := []string{NormalizeKey(b.Name), NormalizeKey(string(b.ID)), NormalizeKey(b.USFM)}
	for _, a := range b.Aliases {
		keys = append(keys, NormalizeKey(a))
	}
	return keys
}

// ChapterCount returns the number of chapters in the book.
func (b *Book) ChapterCount() int {
	return len(b.Chapters)
}

// VerseCount returns the number of verses in a chapter, or 0 if the chapter
// does not exist.
func (b *Book) VerseCount(chapter int) int {
	if chapter < 1 || chapter > len(b.Chapters) {
		return 0
	}
	return b.Chapters[chapter-1]
}

// NormalizeKey lowercases a book name and strips spaces and periods so that
// "1 Cor.", "1cor" and "1 COR" compare equal.
func NormalizeKey(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '.', '_':
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Lookup returns the book with the given OSIS id.
func Lookup(id BookID) (*Book, bool) {
	b, ok := byID[id]
	return b, ok
}

// ByUSFM returns the book with the given USFM code. The code is matched
// case-insensitively.
func ByUSFM(code string) (*Book, bool) {
	b, ok := byUSFM[strings.ToUpper(strings.TrimSpace(code))]
	return b, ok
}

// ByAlias resolves a display name, OSIS id, USFM code or abbreviation.
func ByAlias(name string) (*Book, bool) {
	b, ok := byAlias[NormalizeKey(name)]
	return b, ok
}

// All returns every book in canonical order.
func All() []*Book {
	out := make([]*Book, len(books))
	for i := range books {
		out[i] = &books[i]
	}
	return out
}

// Order returns the zero-based canonical position of the book, or -1.
func Order(id BookID) int {
	if i, ok := order[id]; ok {
		return i
	}
	return -1
}

// VerseCount returns the number of verses in the given chapter, or 0 if the
// book or chapter does not exist.
func VerseCount(id BookID, chapter int) int {
	b, ok := byID[id]
	if !ok {
		return 0
	}
	return b.VerseCount(chapter)
}

// ChapterCount returns the number of chapters in a book, or 0 if unknown.
func ChapterCount(id BookID) int {
	b, ok := byID[id]
	if !ok {
		return 0
	}
	return b.ChapterCount()
}

// Name returns the display name of a book, or the id itself if unknown.
func Name(id BookID) string {
	if b, ok := byID[id]; ok {
		return b.Name
	}
	return string(id)
}

// USFM returns the USFM code of a book, or "" if unknown.
func USFM(id BookID) string {
	if b, ok := byID[id]; ok {
		return b.USFM
	}
	return ""
}
