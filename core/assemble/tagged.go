package assemble

import (
	"fmt"
	"strings"

	apperrors "github.com/FocuswithJustin/versefinder/core/errors"
)

// missingText is the placeholder providers emit for a verse absent from a
// translation.
const missingText = "undefined"

type accumulator struct {
	text    string
	present bool
}

func (a *accumulator) appendPlain(text string) {
	if a.text != "" && !strings.HasSuffix(a.text, " ") {
		a.text += " "
	}
	a.text = fixCommas(a.text + text)
	a.present = true
}

// AssembleTagged folds a tagged content tree into one verse per token, in
// token order. Verses the provider omitted or marked missing are dropped.
//
// A tag group whose first fragment has no token, or any token that is not
// in tokens, fails the whole call with a MalformedContentError.
func AssembleTagged(tree ContentTree, tokens []string) ([]Verse, error) {
	acc := make(map[string]*accumulator, len(tokens))
	for _, tok := range tokens {
		acc[tok] = &accumulator{}
	}

	for _, block := range tree.Blocks {
		label := block.Name
		if block.Style != "" {
			label += "." + block.Style
		}

		for i, node := range block.Nodes {
			switch n := node.(type) {
			case TagGroup:
				if len(n.Items) == 0 {
					continue
				}
				tok := n.Items[0].Token
				if tok == "" {
					return nil, apperrors.NewMalformed(label, fmt.Sprintf("tag group %d (%s) has no verse id", i, n.Name))
				}
				a, ok := acc[tok]
				if !ok {
					return nil, apperrors.NewMalformed(label, fmt.Sprintf("unexpected verse id %q", tok))
				}
				for _, item := range n.Items {
					if item.Present {
						a.text += item.Text
						a.present = true
					}
				}
				a.text = reflow(a.text)

			case PlainItem:
				a, ok := acc[n.Token]
				if !ok {
					return nil, apperrors.NewMalformed(label, fmt.Sprintf("unexpected verse id %q", n.Token))
				}
				if n.Present {
					a.appendPlain(n.Text)
				}

			default:
				return nil, apperrors.NewMalformed(label, fmt.Sprintf("unknown node %T", node))
			}
		}
	}

	verses := make([]Verse, 0, len(tokens))
	for _, tok := range tokens {
		a := acc[tok]
		if !a.present {
			continue
		}
		text := strings.TrimSpace(a.text)
		if text == missingText {
			continue
		}
		verses = append(verses, Verse{Text: text})
	}
	return verses, nil
}
