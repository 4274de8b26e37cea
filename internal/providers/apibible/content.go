package apibible

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/versefinder/core/assemble"
	"github.com/FocuswithJustin/versefinder/core/xml"
)

// item is one node of the JSON content tree. Blocks and tag groups have
// type "tag" and children; leaves have type "text" and a verse id.
type item struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Text  *string `json:"text"`
	Attrs struct {
		VerseID string `json:"verseId"`
		Style   string `json:"style"`
	} `json:"attrs"`
	Items []item `json:"items"`
}

// DecodeJSON decodes a raw JSON content array.
func DecodeJSON(data []byte) (assemble.ContentTree, error) {
	var items []item
	if err := json.Unmarshal(data, &items); err != nil {
		return assemble.ContentTree{}, fmt.Errorf("decoding content: %w", err)
	}
	return decodeItems(items), nil
}

func decodeItems(items []item) assemble.ContentTree {
	tree := assemble.ContentTree{Blocks: make([]assemble.Block, 0, len(items))}
	for _, b := range items {
		block := assemble.Block{Name: b.Name, Style: b.Attrs.Style}
		for _, child := range b.Items {
			if child.Type == "tag" {
				block.Nodes = append(block.Nodes, assemble.TagGroup{
					Name:  child.Name,
					Items: leaves(child.Items, nil),
				})
				continue
			}
			block.Nodes = append(block.Nodes, assemble.PlainItem{Fragment: fragment(child)})
		}
		tree.Blocks = append(tree.Blocks, block)
	}
	return tree
}

// leaves flattens nested markup depth-first into its text fragments.
func leaves(items []item, out []assemble.Fragment) []assemble.Fragment {
	for _, it := range items {
		if it.Type == "tag" {
			out = leaves(it.Items, out)
			continue
		}
		out = append(out, fragment(it))
	}
	return out
}

func fragment(it item) assemble.Fragment {
	f := assemble.Fragment{Token: it.Attrs.VerseID}
	if it.Text != nil {
		f.Text = *it.Text
		f.Present = true
	}
	return f
}

// DecodeXHTML decodes an XHTML passage requested with verse spans. Each top
// level element is a block and each verse span a plain fragment.
func DecodeXHTML(content string) (assemble.ContentTree, error) {
	doc, err := xml.ParseFragment([]byte(content))
	if err != nil {
		return assemble.ContentTree{}, err
	}

	var tree assemble.ContentTree
	root := doc.Root()
	if root == nil {
		return tree, nil
	}

	for _, el := range root.Children() {
		spans, err := el.XPath(".//span[@data-verse-id]")
		if err != nil {
			return assemble.ContentTree{}, err
		}
		block := assemble.Block{Name: el.Name(), Style: el.Attr("class")}
		for _, s := range spans {
			block.Nodes = append(block.Nodes, assemble.PlainItem{Fragment: assemble.Fragment{
				Token:   s.Attr("data-verse-id"),
				Text:    strings.TrimSpace(s.InnerText()),
				Present: true,
			}})
		}
		tree.Blocks = append(tree.Blocks, block)
	}
	return tree, nil
}
