package markup

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ParseXML builds a markup tree from an XML document or fragment. The
// returned node is the root element. Namespace prefixes are dropped from
// both element and attribute names, so <w:tc w:val="x"> becomes tag "tc"
// with attribute "val". xmlns declarations are not recorded.
func ParseXML(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("markup: parsing XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := NewNode(t.Name.Local)
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				node.SetAttr(a.Name.Local, a.Value)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("markup: multiple root elements")
				}
				root = node
			} else {
				stack[len(stack)-1].AppendChild(node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("markup: unbalanced end element %s", t.Name.Local)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := string(t)
			if strings.TrimSpace(text) == "" {
				continue
			}
			stack[len(stack)-1].Text += text
		}
	}

	if root == nil {
		return nil, fmt.Errorf("markup: no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("markup: unclosed element %s", stack[len(stack)-1].Tag)
	}
	return root, nil
}

// ParseXMLString is a convenience wrapper around [ParseXML].
func ParseXMLString(s string) (*Node, error) {
	return ParseXML(strings.NewReader(s))
}
