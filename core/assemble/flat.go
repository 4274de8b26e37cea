package assemble

import "strings"

// FlatPassage is one per-verse provider response.
type FlatPassage struct {
	Text    string
	Present bool
}

// Missing reports whether the provider has no text for the verse, either by
// sending none or by sending the "undefined" placeholder.
func (p FlatPassage) Missing() bool {
	return !p.Present || strings.TrimSpace(p.Text) == missingText
}

// AssembleFlat wraps each present passage as a Verse, keeping provider order.
func AssembleFlat(passages []FlatPassage) []Verse {
	verses := make([]Verse, 0, len(passages))
	for _, p := range passages {
		if p.Missing() {
			continue
		}
		verses = append(verses, Verse{Text: strings.TrimSpace(p.Text)})
	}
	return verses
}
