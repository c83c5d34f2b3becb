package markup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseHTML builds a markup tree from an HTML document. The returned node
// has tag "document" and contains the parsed element tree; html.Parse
// inserts the usual html/head/body structure for fragments.
func ParseHTML(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("markup: parsing HTML: %w", err)
	}

	root := NewNode("document")
	convertHTML(doc, root)
	return root, nil
}

// ParseHTMLString is a convenience wrapper around [ParseHTML].
func ParseHTMLString(s string) (*Node, error) {
	return ParseHTML(strings.NewReader(s))
}

// convertHTML appends the converted children of src to dst.
func convertHTML(src *html.Node, dst *Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			node := NewNode(c.Data)
			for _, a := range c.Attr {
				node.SetAttr(a.Key, a.Val)
			}
			dst.AppendChild(node)
			convertHTML(c, node)
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			dst.Text += c.Data
		}
	}
}
