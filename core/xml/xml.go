// Package xml provides XML and XHTML parsing with XPath queries.
//
// Security Notes:
//   - Parsing goes through xmlquery, which uses Go's encoding/xml and never
//     fetches external entities.
//   - Fragment parsing is non-strict and only knows the HTML entity set, so
//     provider markup with &nbsp; or unclosed <br> still parses.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML element.
type Node struct {
	node *xmlquery.Node
}

// Parse parses well-formed XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseFragment parses an XHTML fragment such as a run of sibling <p>
// elements. The fragment is wrapped in a synthetic <fragment> root.
func ParseFragment(data []byte) (*Document, error) {
	var buf bytes.Buffer
	buf.Grow(len(data) + 23)
	buf.WriteString("<fragment>")
	buf.Write(data)
	buf.WriteString("</fragment>")

	root, err := xmlquery.ParseWithOptions(&buf, xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict:    false,
			AutoClose: xml.HTMLAutoClose,
			Entity:    xml.HTMLEntity,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("parsing XHTML fragment: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the root element of the document.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// XPath executes an XPath query and returns matching nodes.
func (d *Document) XPath(expr string) ([]*Node, error) {
	return query(d.root, expr)
}

// XPathFirst executes an XPath query and returns the first matching node.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	node, err := xmlquery.Query(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// XPath executes an XPath query relative to the node.
func (n *Node) XPath(expr string) ([]*Node, error) {
	if n.node == nil {
		return nil, nil
	}
	return query(n.node, expr)
}

func query(root *xmlquery.Node, expr string) ([]*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	nodes, err := xmlquery.QueryAll(root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}

	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// Name returns the element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// InnerText returns all text content of the node and its descendants.
func (n *Node) InnerText() string {
	if n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// Children returns the child element nodes.
func (n *Node) Children() []*Node {
	if n.node == nil {
		return nil
	}

	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// Attr returns the value of a specific attribute.
func (n *Node) Attr(name string) string {
	if n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}
