package canon

import "testing"

func TestBookCount(t *testing.T) {
	if got := len(All()); got != 66 {
		t.Fatalf("len(All()) = %d, want 66", got)
	}
}

func TestKeysAreUnambiguous(t *testing.T) {
	owner := make(map[string]BookID)
	for _, b := range All() {
		for _, key := range b.Keys() {
			if prev, ok := owner[key]; ok && prev != b.ID {
				t.Errorf("key %q maps to both %s and %s", key, prev, b.ID)
			}
			owner[key] = b.ID
		}
	}
}

func TestByAlias(t *testing.T) {
	tests := []struct {
		input string
		want  BookID
	}{
		{"Genesis", "Gen"},
		{"gen", "Gen"},
		{"Gen.", "Gen"},
		{"1 Cor", "1Cor"},
		{"1cor", "1Cor"},
		{"1 Corinthians", "1Cor"},
		{"Song of Songs", "Song"},
		{"song of solomon", "Song"},
		{"Psalm", "Ps"},
		{"PSA", "Ps"},
		{"jhn", "John"},
		{"Jn", "John"},
		{"Revelations", "Rev"},
		{"3 John", "3John"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b, ok := ByAlias(tt.input)
			if !ok {
				t.Fatalf("ByAlias(%q) not found", tt.input)
			}
			if b.ID != tt.want {
				t.Errorf("ByAlias(%q) = %s, want %s", tt.input, b.ID, tt.want)
			}
		})
	}

	if _, ok := ByAlias("Hezekiah"); ok {
		t.Error("ByAlias(Hezekiah) should not resolve")
	}
}

func TestByUSFM(t *testing.T) {
	b, ok := ByUSFM("sng")
	if !ok {
		t.Fatal("ByUSFM(sng) not found")
	}
	if b.Name != "Song of Solomon" {
		t.Errorf("Name = %q, want %q", b.Name, "Song of Solomon")
	}
	if _, ok := ByUSFM("XYZ"); ok {
		t.Error("ByUSFM(XYZ) should not resolve")
	}
}

func TestVerseCount(t *testing.T) {
	tests := []struct {
		book    BookID
		chapter int
		want    int
	}{
		{"Gen", 1, 31},
		{"John", 3, 36},
		{"Ps", 119, 176},
		{"Ps", 117, 2},
		{"Jude", 1, 25},
		{"Gen", 51, 0},
		{"Gen", 0, 0},
		{"Nope", 1, 0},
	}

	for _, tt := range tests {
		if got := VerseCount(tt.book, tt.chapter); got != tt.want {
			t.Errorf("VerseCount(%s, %d) = %d, want %d", tt.book, tt.chapter, got, tt.want)
		}
	}
}

func TestChapterCount(t *testing.T) {
	if got := ChapterCount("Ps"); got != 150 {
		t.Errorf("ChapterCount(Ps) = %d, want 150", got)
	}
	if got := ChapterCount("Obad"); got != 1 {
		t.Errorf("ChapterCount(Obad) = %d, want 1", got)
	}
	if got := ChapterCount("Nope"); got != 0 {
		t.Errorf("ChapterCount(Nope) = %d, want 0", got)
	}
}

func TestOrder(t *testing.T) {
	if got := Order("Gen"); got != 0 {
		t.Errorf("Order(Gen) = %d, want 0", got)
	}
	if got := Order("Rev"); got != 65 {
		t.Errorf("Order(Rev) = %d, want 65", got)
	}
	if got := Order("Nope"); got != -1 {
		t.Errorf("Order(Nope) = %d, want -1", got)
	}
}

func TestNameAndUSFM(t *testing.T) {
	if got := Name("1John"); got != "1 John" {
		t.Errorf("Name(1John) = %q, want %q", got, "1 John")
	}
	if got := USFM("Ezek"); got != "EZK" {
		t.Errorf("USFM(Ezek) = %q, want %q", got, "EZK")
	}
	if got := USFM("Nope"); got != "" {
		t.Errorf("USFM(Nope) = %q, want empty", got)
	}
}
