package youversion

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML extracts the readable text of an HTML passage. Verse numbers,
// footnotes and headings are dropped.
func StripHTML(s string) (string, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	extractText(doc, &sb)
	return strings.Join(strings.Fields(sb.String()), " "), nil
}

func extractText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "sup", "h1", "h2", "h3", "h4", "h5", "h6":
			return
		case "br", "p", "div":
			sb.WriteString(" ")
		}
		if skipClass(n) {
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, sb)
	}

	if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "div") {
		sb.WriteString(" ")
	}
}

// skipClass reports elements carrying verse labels or notes.
func skipClass(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, cls := range strings.Fields(a.Val) {
			switch cls {
			case "label", "note", "yv-vlbl", "yv-n", "heading":
				return true
			}
		}
	}
	return false
}
