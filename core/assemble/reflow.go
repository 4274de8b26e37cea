package assemble

import (
	"regexp"
	"strings"
)

var (
	capitalBoundary  = regexp.MustCompile(`([^\n])([A-Z])`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	spaceBeforeComma = regexp.MustCompile(`\s+,`)
)

// reflow restores word boundaries lost inside tagged markup. A break goes in
// before every non-initial capital, then all breaks and whitespace runs
// collapse to single spaces and spaces before commas are dropped.
func reflow(s string) string {
	s = strings.TrimSpace(capitalBoundary.ReplaceAllString(s, "$1\n$2"))
	s = strings.ReplaceAll(s, "\n", " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = spaceBeforeComma.ReplaceAllString(s, ",")
	return strings.TrimSpace(s)
}

// fixCommas drops whitespace before commas.
func fixCommas(s string) string {
	return spaceBeforeComma.ReplaceAllString(s, ",")
}
