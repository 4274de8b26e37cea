package grammar

import (
	"reflect"
	"testing"

	"github.com/FocuswithJustin/versefinder/core/canon"
)

func TestParseOSIS(t *testing.T) {
	tests := []struct {
		input string
		c     Compaction
		want  string
	}{
		{"John 3:16", CompactionBC, "John.3.16"},
		{"john 3.16", CompactionBC, "John.3.16"},
		{"Jn 3:16-18", CompactionBC, "John.3.16-John.3.18"},
		{"Genesis 1", CompactionBC, "Gen.1"},
		{"Genesis 1", CompactionBCV, "Gen.1.1-Gen.1.31"},
		{"Gen.1.1-5", CompactionBC, "Gen.1.1-Gen.1.5"},
		{"Genesis 1:1-2:3", CompactionBC, "Gen.1.1-Gen.2.3"},
		{"1 Cor 13", CompactionBC, "1Cor.13"},
		{"1st John 4:8", CompactionBC, "1John.4.8"},
		{"II Kings 2:11", CompactionBC, "2Kgs.2.11"},
		{"Song of Solomon 2:1-4", CompactionBC, "Song.2.1-Song.2.4"},
		{"Psalm 119", CompactionBCV, "Ps.119.1-Ps.119.176"},
		{"Ps. 23:1", CompactionBC, "Ps.23.1"},
		{"Jude 5", CompactionBC, "Jude.1.5"},
		{"Revelation 22:21", CompactionBC, "Rev.22.21"},
		{"read John 3:16 tonight", CompactionBC, "John.3.16"},
		{"Jo 3:20", CompactionBC, "Job.3.20"},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := p.ParseWith(tt.input, tt.c)
			if got := res.OSIS(); got != tt.want {
				t.Errorf("OSIS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseBooks(t *testing.T) {
	tests := []struct {
		input    string
		want     []canon.BookID
		passages int
	}{
		{"John", []canon.BookID{"John"}, 0},
		{"Genesis", []canon.BookID{"Gen"}, 0},
		{"Jo 3", []canon.BookID{"Josh", "Job", "Joel", "Jonah", "John"}, 1},
		{"Mark my words", []canon.BookID{"Mark"}, 0},
		{"Genisis 1", []canon.BookID{"Gen"}, 1},
		{"in the beginning God created", nil, 0},
		{"love your neighbor", nil, 0},
		{"", nil, 0},
		{"   ", nil, 0},
		{"3:16", nil, 0},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := p.Parse(tt.input)
			if res == nil {
				t.Fatal("Parse() returned nil")
			}
			if !reflect.DeepEqual(res.Books, tt.want) {
				t.Errorf("Books = %v, want %v", res.Books, tt.want)
			}
			if len(res.Passages) != tt.passages {
				t.Errorf("len(Passages) = %d, want %d", len(res.Passages), tt.passages)
			}
		})
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		input    string
		valid    bool
		start    Point
		messages []string
	}{
		{"John 3:99", true, Point{"John", 3, 36}, []string{MsgStartVerseNotExist}},
		{"John 30:1", false, Point{"John", 30, 1}, []string{MsgStartChapterNotExist}},
		{"John 0", false, Point{"John", 0, 0}, []string{MsgStartChapterNotExist}},
		{"John 3:0", false, Point{"John", 3, 0}, []string{MsgStartVerseIsZero}},
		{"John 3:16", true, Point{"John", 3, 16}, nil},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pass, ok := p.Parse(tt.input).First()
			if !ok {
				t.Fatal("First() returned no passage")
			}
			if pass.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v", pass.Valid, tt.valid)
			}
			if pass.Start != tt.start {
				t.Errorf("Start = %+v, want %+v", pass.Start, tt.start)
			}
			if !reflect.DeepEqual(pass.Messages, tt.messages) {
				t.Errorf("Messages = %v, want %v", pass.Messages, tt.messages)
			}
		})
	}
}

func TestClamped(t *testing.T) {
	p := New()
	pass, _ := p.Parse("John 3:99").First()
	if !pass.Clamped() {
		t.Error("Clamped() = false, want true")
	}
	if pass.RequestedVerse != 99 {
		t.Errorf("RequestedVerse = %d, want 99", pass.RequestedVerse)
	}
	pass, _ = p.Parse("John 3:16").First()
	if pass.Clamped() {
		t.Error("Clamped() = true, want false")
	}
}

func TestEndRangeClamped(t *testing.T) {
	pass, ok := New().Parse("John 3:16-99").First()
	if !ok {
		t.Fatal("First() returned no passage")
	}
	if pass.End.Verse != 36 {
		t.Errorf("End.Verse = %d, want 36", pass.End.Verse)
	}
}

func TestInvalidPassageNotRendered(t *testing.T) {
	if got := New().Parse("John 30").OSIS(); got != "" {
		t.Errorf("OSIS() = %q, want empty", got)
	}
}

func TestWithCompaction(t *testing.T) {
	p := New(WithCompaction(CompactionBCV))
	if p.Compaction() != CompactionBCV {
		t.Fatalf("Compaction() = %v, want bcv", p.Compaction())
	}
	if got := p.Parse("Obadiah 1").OSIS(); got != "Obad.1.1-Obad.1.21" {
		t.Errorf("OSIS() = %q, want %q", got, "Obad.1.1-Obad.1.21")
	}
}

func TestFirstOnNil(t *testing.T) {
	var r *Result
	if _, ok := r.First(); ok {
		t.Error("First() on nil Result returned ok")
	}
}
