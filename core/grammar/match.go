package grammar

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"

	"github.com/FocuswithJustin/versefinder/core/canon"
)

// minPrefixLetters is the shortest alphabetic book stem that is expanded by
// prefix ("Jo" -> Job, Joel, John, Jonah, Joshua).
const minPrefixLetters = 2

// minFuzzyLength is the shortest book stem compared by edit distance.
const minFuzzyLength = 4

// matchKind records how a book token was resolved.
type matchKind int

const (
	matchNone matchKind = iota
	matchExact
	matchPrefix
	matchFuzzy
)

// matchBooks returns the plausible books for a normalized book key, best
// first. Exact name/alias matches win outright; otherwise every book with a
// key starting with the stem is returned in canonical order; otherwise books
// within edit distance 1 are returned.
func matchBooks(key string, allowLoose bool) ([]canon.BookID, matchKind) {
	if key == "" {
		return nil, matchNone
	}
	if b, ok := canon.ByAlias(key); ok {
		return []canon.BookID{b.ID}, matchExact
	}
	if !allowLoose {
		return nil, matchNone
	}

	if countLetters(key) >= minPrefixLetters {
		var out []canon.BookID
		for _, b := range canon.All() {
			for _, k := range b.Keys() {
				if strings.HasPrefix(k, key) {
					out = append(out, b.ID)
					break
				}
			}
		}
		if len(out) > 0 {
			return out, matchPrefix
		}
	}

	if len(key) >= minFuzzyLength {
		var out []canon.BookID
		for _, b := range canon.All() {
			for _, k := range b.Keys() {
				if len(k) < minFuzzyLength {
					continue
				}
				if levenshtein.Distance(key, k, nil) <= 1 {
					out = append(out, b.ID)
					break
				}
			}
		}
		if len(out) > 0 {
			return out, matchFuzzy
		}
	}

	return nil, matchNone
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// ordinalWords maps spelled and roman ordinals that may precede a book name.
var ordinalWords = map[string]int{
	"i": 1, "ii": 2, "iii": 3,
	"first": 1, "second": 2, "third": 3,
}

// bookKey joins the ordinal and words of a book token into a lookup key.
// "1st John" arrives as ordinal 1 and words ["st", "John"]; "II Kings" as
// words ["II", "Kings"].
func bookKey(ordinal *int, words []string) string {
	n := 0
	if ordinal != nil {
		n = *ordinal
	}
	if n > 0 && len(words) > 1 {
		switch strings.ToLower(words[0]) {
		case "st", "nd", "rd":
			words = words[1:]
		}
	}
	if n == 0 && len(words) > 1 {
		if v, ok := ordinalWords[strings.ToLower(words[0])]; ok {
			n = v
			words = words[1:]
		}
	}

	key := canon.NormalizeKey(strings.Join(words, ""))
	if n > 0 {
		key = strconv.Itoa(n) + key
	}
	return key
}
