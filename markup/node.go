package markup

import "strings"

// Node is a generic structured-markup tree node.
type Node struct {
	Tag        string
	Attributes map[string]string
	Children   []*Node
	Text       string
}

// NewNode creates a node with the given tag and no attributes.
func NewNode(tag string) *Node {
	return &Node{Tag: tag}
}

// Attr returns the named attribute value, or "" if absent.
func (n *Node) Attr(name string) string {
	return n.Attributes[name]
}

// LookupAttr returns the named attribute value and whether it is present.
func (n *Node) LookupAttr(name string) (string, bool) {
	v, ok := n.Attributes[name]
	return v, ok
}

// SetAttr sets an attribute, allocating the map on first use.
func (n *Node) SetAttr(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

// AppendChild appends a child node.
func (n *Node) AppendChild(c *Node) {
	n.Children = append(n.Children, c)
}

// FindShallow returns the nearest descendants with the given tag, in
// document order. It does not descend into matched nodes, so a table
// nested inside a matched table is not returned; callers recurse into
// matches explicitly when they want deeper levels.
func (n *Node) FindShallow(tag string) []*Node {
	var found []*Node
	var walk func(node *Node)
	walk = func(node *Node) {
		for _, c := range node.Children {
			if c.Tag == tag {
				found = append(found, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return found
}

// FindFirst returns the first shallow descendant with the given tag, or
// nil if none exists.
func (n *Node) FindFirst(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
		if m := c.FindFirst(tag); m != nil {
			return m
		}
	}
	return nil
}

// HasDescendant reports whether any descendant has the given tag.
func (n *Node) HasDescendant(tag string) bool {
	return n.FindFirst(tag) != nil
}

// TextContent returns the concatenated text of the node and all its
// descendants in document order, skipping subtrees rooted at any of the
// given tags. Extractors use the skip list to keep nested table content
// out of the containing cell's text.
func (n *Node) TextContent(skipTags ...string) string {
	var sb strings.Builder
	var walk func(node *Node)
	walk = func(node *Node) {
		sb.WriteString(node.Text)
		for _, c := range node.Children {
			if contains(skipTags, c.Tag) {
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
