package grammar

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/versefinder/core/canon"
)

// Validation messages attached to a Passage.
const (
	MsgStartChapterNotExist = "start_chapter_not_exist"
	MsgStartVerseIsZero     = "start_verse_is_zero"
	MsgStartVerseNotExist   = "start_verse_not_exist"
	MsgEndChapterNotExist   = "end_chapter_not_exist"
	MsgEndVerseNotExist     = "end_verse_not_exist"
	MsgEndBeforeStart       = "end_before_start"
)

// Point is a position in the canon. Verse is 0 when the reference names a
// whole chapter.
type Point struct {
	Book    canon.BookID
	Chapter int
	Verse   int
}

// OSIS renders the point as "Book.C" or "Book.C.V".
func (p Point) OSIS() string {
	s := string(p.Book) + "." + strconv.Itoa(p.Chapter)
	if p.Verse > 0 {
		s += "." + strconv.Itoa(p.Verse)
	}
	return s
}

func (p Point) before(o Point) bool {
	if p.Chapter != o.Chapter {
		return p.Chapter < o.Chapter
	}
	return p.Verse < o.Verse
}

// Passage is a single parsed reference bounded against the canon.
type Passage struct {
	Start    Point
	End      Point
	Valid    bool
	Messages []string

	// RequestedVerse is the start verse as written, before clamping.
	RequestedVerse int
}

// validate bounds the passage. A missing chapter or a zero verse makes the
// passage invalid; a verse past the end of its chapter is clamped to the
// last verse and only noted.
func (p *Passage) validate(hasVerse bool) {
	chapters := canon.ChapterCount(p.Start.Book)
	if p.Start.Chapter < 1 || p.Start.Chapter > chapters {
		p.Valid = false
		p.Messages = append(p.Messages, MsgStartChapterNotExist)
		return
	}
	if hasVerse && p.Start.Verse == 0 {
		p.Valid = false
		p.Messages = append(p.Messages, MsgStartVerseIsZero)
		return
	}

	if last := canon.VerseCount(p.Start.Book, p.Start.Chapter); p.Start.Verse > last {
		p.Start.Verse = last
		p.Messages = append(p.Messages, MsgStartVerseNotExist)
	}

	if p.End.Chapter > chapters {
		p.End.Chapter = chapters
		p.Messages = append(p.Messages, MsgEndChapterNotExist)
	}
	if last := canon.VerseCount(p.End.Book, p.End.Chapter); p.End.Verse > last {
		p.End.Verse = last
		p.Messages = append(p.Messages, MsgEndVerseNotExist)
	}
	if p.End.before(p.Start) {
		p.End = p.Start
		p.Messages = append(p.Messages, MsgEndBeforeStart)
	}
}

// Clamped reports whether the start verse was pulled back into range.
func (p Passage) Clamped() bool {
	for _, m := range p.Messages {
		if m == MsgStartVerseNotExist {
			return true
		}
	}
	return false
}

// OSIS renders the passage with the given compaction.
func (p Passage) OSIS(c Compaction) string {
	start, end := p.Start, p.End
	if c == CompactionBCV {
		if start.Verse == 0 {
			start.Verse = 1
		}
		if end.Verse == 0 {
			end.Verse = canon.VerseCount(end.Book, end.Chapter)
		}
	}

	s, e := start.OSIS(), end.OSIS()
	if s == e {
		return s
	}
	return s + "-" + e
}

// Result is the outcome of parsing free text.
type Result struct {
	// Books lists every plausible book named in the text, best first.
	Books []canon.BookID

	// Passages holds the parsed references. It is empty for book-only input.
	Passages []Passage

	// Compaction is the strategy OSIS renders with.
	Compaction Compaction
}

// First returns the first parsed passage.
func (r *Result) First() (Passage, bool) {
	if r == nil || len(r.Passages) == 0 {
		return Passage{}, false
	}
	return r.Passages[0], true
}

// OSIS renders every valid passage, comma separated.
func (r *Result) OSIS() string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, len(r.Passages))
	for _, p := range r.Passages {
		if p.Valid {
			parts = append(parts, p.OSIS(r.Compaction))
		}
	}
	return strings.Join(parts, ",")
}
