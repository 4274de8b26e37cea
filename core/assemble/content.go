// Package assemble reconstructs ordered verse text from provider payloads:
// the tagged content tree of a range fetch, or flat per-verse passages.
package assemble

// Verse is one assembled verse. Its position in the result is its identity.
type Verse struct {
	Text string `json:"text"`
}

// Fragment is a piece of verse text stamped with its location token.
// Present is false when the provider sent no text at all.
type Fragment struct {
	Token   string
	Text    string
	Present bool
}

// ContentTree is a decoded tagged-content payload.
type ContentTree struct {
	Blocks []Block
}

// Block is a top-level paragraph-like container (e.g. "para" with style
// "p" or "q1").
type Block struct {
	Name  string
	Style string
	Nodes []Node
}

// Node is either a TagGroup or a PlainItem.
type Node interface {
	node()
}

// TagGroup is a markup-wrapped run of fragments that all belong to the verse
// named by its first fragment.
type TagGroup struct {
	Name  string
	Items []Fragment
}

// PlainItem is a single prose fragment.
type PlainItem struct {
	Fragment
}

func (TagGroup) node()  {}
func (PlainItem) node() {}

// Texts returns the text of each verse.
func Texts(verses []Verse) []string {
	out := make([]string, len(verses))
	for i, v := range verses {
		out[i] = v.Text
	}
	return out
}
