// Package view holds the structural output of element rendering. A view is a
// small, immutable-by-convention tree of element, text and fragment nodes that
// renderers (HTML, terminal) serialise. Attribute order is preserved so that
// the same tree always serialises to the same bytes.
package view

import (
	"slices"
	"strings"
)

// NodeType identifies the kind of a Node.
type NodeType uint8

const (
	// ElementNode is a tagged node carrying attributes and children.
	ElementNode NodeType = iota + 1
	// TextNode carries inert text. Renderers must escape it.
	TextNode
	// FragmentNode groups children without contributing a tag of its own.
	FragmentNode
)

// Attr is a single attribute. Attributes keep insertion order.
type Attr struct {
	Key string
	Val string
}

// Node is one node of a view tree.
type Node struct {
	Type     NodeType
	Tag      string
	Attrs    []Attr
	Data     string
	Children []*Node
}

// Element builds an element node. Nil children are skipped, which lets
// callers express optional parts inline.
func Element(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{
		Type:     ElementNode,
		Tag:      strings.ToLower(strings.TrimSpace(tag)),
		Attrs:    slices.Clone(attrs),
		Children: compact(children),
	}
}

// Text builds a text node.
func Text(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// Fragment groups nodes without a wrapping element.
func Fragment(children ...*Node) *Node {
	return &Node{Type: FragmentNode, Children: compact(children)}
}

// A is shorthand for building an Attr.
func A(key, val string) Attr {
	return Attr{Key: key, Val: val}
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attrs {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Classes splits the class attribute into its tokens.
func (n *Node) Classes() []string {
	raw, ok := n.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(raw)
}

// HasClass reports whether the node carries the given class token.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes(), class)
}

// Find returns the first node, in document order, matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	if n == nil {
		return nil
	}
	if pred(n) {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(pred); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node matching pred in document order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.walk(func(node *Node) {
		if pred(node) {
			out = append(out, node)
		}
	})
	return out
}

// TextContent concatenates all descendant text nodes.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.walk(func(node *Node) {
		if node.Type == TextNode {
			b.WriteString(node.Data)
		}
	})
	return b.String()
}

func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.walk(fn)
	}
}

// ByTag matches element nodes with the given tag.
func ByTag(tag string) func(*Node) bool {
	return func(n *Node) bool {
		return n.Type == ElementNode && n.Tag == tag
	}
}

// ByClass matches element nodes carrying the given class token.
func ByClass(class string) func(*Node) bool {
	return func(n *Node) bool {
		return n.Type == ElementNode && n.HasClass(class)
	}
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.Tag != b.Tag || a.Data != b.Data {
		return false
	}
	if !slices.Equal(a.Attrs, b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func compact(nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(nodes))
	for _, node := range nodes {
		if node != nil {
			out = append(out, node)
		}
	}
	return out
}
