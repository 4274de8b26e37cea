// Package grammar parses natural-language scripture references such as
// "John 3:16", "1 Cor 13", "Psalm 119" or "Gen.1.1-5" into canonical
// passages bounded against the canon table.
//
// A Parser is immutable once built and safe for concurrent use.
package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/versefinder/core/canon"
)

// referenceGrammar is the participle grammar for human references.
// Examples: "John 3:16", "Jn 3.16", "1 Cor 13", "Song of Solomon 2:1-4",
// "Gen.1", "Genesis 1:1-2:3".
//
//nolint:govet // participle grammar tags are not standard struct tags
type referenceGrammar struct {
	Ordinal    *int     `@Number?`
	Words      []string `@Word+ "."?`
	Chapter    *int     `( @Number`
	Verse      *int     `  ( ( ":" | "." ) @Number )?`
	EndChapter *int     `  ( ( "-" | "–" | "—" ) @Number`
	EndVerse   *int     `    ( ( ":" | "." ) @Number )? )? )?`
}

// referenceLexer tokenizes human references. Anything that is not a word,
// number or separator lands in Other so that free text never fails to lex.
var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Word", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `[:.,;\-–—]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Other", Pattern: `.`},
})

var referenceParser = participle.MustBuild[referenceGrammar](
	participle.Lexer(referenceLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(3),
)

// maxRescan bounds how many leading words are skipped while looking for a
// reference embedded in free text ("read John 3:16 tonight").
const maxRescan = 8

// Compaction controls how Result.OSIS renders whole chapters.
type Compaction int

const (
	// CompactionBC renders a whole chapter as "Gen.1".
	CompactionBC Compaction = iota
	// CompactionBCV always renders book.chapter.verse, expanding a whole
	// chapter to its full verse range ("Gen.1.1-Gen.1.31").
	CompactionBCV
)

// String returns the option name of the compaction strategy.
func (c Compaction) String() string {
	switch c {
	case CompactionBCV:
		return "bcv"
	default:
		return "bc"
	}
}

// Parser resolves natural-language references.
type Parser struct {
	compaction Compaction
}

// Option configures a Parser.
type Option func(*Parser)

// WithCompaction sets the default OSIS compaction strategy.
func WithCompaction(c Compaction) Option {
	return func(p *Parser) {
		p.compaction = c
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{compaction: CompactionBC}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Compaction returns the parser's default compaction strategy.
func (p *Parser) Compaction() Compaction {
	return p.compaction
}

// Parse parses text using the parser's default compaction strategy.
func (p *Parser) Parse(text string) *Result {
	return p.ParseWith(text, p.compaction)
}

// ParseWith parses text, rendering OSIS output with the given compaction.
// Blank or unrecognized input yields an empty Result, never nil.
func (p *Parser) ParseWith(text string, c Compaction) *Result {
	res := &Result{Compaction: c}

	text = strings.TrimSpace(text)
	if text == "" {
		return res
	}

	rest := text
	for i := 0; i <= maxRescan && rest != ""; i++ {
		g, err := referenceParser.ParseString("", rest, participle.AllowTrailing(true))
		if err == nil {
			books, full := resolveBooks(g)
			if len(books) > 0 && (i == 0 || (full && g.Chapter != nil)) {
				res.Books = books
				if full && g.Chapter != nil {
					res.Passages = append(res.Passages, buildPassage(books, g))
				}
				return res
			}
		}
		rest = skipWord(rest)
	}

	return res
}

// resolveBooks finds the plausible books named by the grammar's book token.
// full reports whether every word of the token was consumed; a partial match
// ("Mark my words") never carries a chapter.
func resolveBooks(g *referenceGrammar) (books []canon.BookID, full bool) {
	allowLoose := g.Chapter != nil || len(g.Words) == 1
	if books, kind := matchBooks(bookKey(g.Ordinal, g.Words), allowLoose); kind != matchNone {
		return books, true
	}

	for n := len(g.Words) - 1; n >= 1; n-- {
		if books, kind := matchBooks(bookKey(g.Ordinal, g.Words[:n]), false); kind != matchNone {
			return books, false
		}
	}
	return nil, false
}

// skipWord drops the first whitespace-delimited word of s.
func skipWord(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' })
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(s[i:])
}

// buildPassage bounds the parsed numbers against the canon. Among several
// plausible books the first one holding the verse wins, then the first one
// holding the chapter.
func buildPassage(books []canon.BookID, g *referenceGrammar) Passage {
	book := pickBook(books, *g.Chapter, g.Verse)

	start := Point{Book: book, Chapter: *g.Chapter}
	hasVerse := g.Verse != nil
	if hasVerse {
		start.Verse = *g.Verse
	}

	// Single-chapter books read "Jude 5" as verse 5.
	if canon.ChapterCount(book) == 1 && !hasVerse && start.Chapter > 1 {
		start = Point{Book: book, Chapter: 1, Verse: start.Chapter}
		hasVerse = true
	}

	end := start
	switch {
	case g.EndChapter == nil:
	case hasVerse && g.EndVerse == nil:
		end = Point{Book: book, Chapter: start.Chapter, Verse: *g.EndChapter}
	default:
		end = Point{Book: book, Chapter: *g.EndChapter}
		if g.EndVerse != nil {
			end.Verse = *g.EndVerse
		}
	}

	p := Passage{Start: start, End: end, Valid: true, RequestedVerse: start.Verse}
	p.validate(hasVerse)
	return p
}

func pickBook(books []canon.BookID, chapter int, verse *int) canon.BookID {
	if verse != nil {
		for _, id := range books {
			if n := canon.VerseCount(id, chapter); n > 0 && *verse <= n {
				return id
			}
		}
	}
	for _, id := range books {
		if canon.VerseCount(id, chapter) > 0 {
			return id
		}
	}
	return books[0]
}
