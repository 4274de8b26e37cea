package reference

import (
	"fmt"

	"github.com/FocuswithJustin/versefinder/core/canon"
)

// LocationTokens returns one USFM location token per verse of the addressed
// chapter, in ascending order: "JHN.3.1" .. "JHN.3.36".
func LocationTokens(a Address) []string {
	code := canon.USFM(a.Book)
	if code == "" || a.VersesInChapter < 1 {
		return nil
	}
	tokens := make([]string, 0, a.VersesInChapter)
	for v := 1; v <= a.VersesInChapter; v++ {
		tokens = append(tokens, fmt.Sprintf("%s.%d.%d", code, a.Chapter, v))
	}
	return tokens
}

// RangeToken joins the first and last token into a range, e.g.
// "JHN.3.1-JHN.3.36". A single token is returned as is.
func RangeToken(tokens []string) string {
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		return tokens[0]
	}
	return tokens[0] + "-" + tokens[len(tokens)-1]
}
