package view

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy
)

// RenderHTML serialises the tree as HTML. Text and attribute values are
// escaped; a fragment root writes its children back to back.
func RenderHTML(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	for _, root := range toHTML(n) {
		if err := html.Render(w, root); err != nil {
			return fmt.Errorf("view: render html: %w", err)
		}
	}
	return nil
}

// HTMLString is a convenience wrapper around RenderHTML.
func HTMLString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SanitizeContent turns host supplied markup into view nodes. The markup is
// passed through a UGC policy first so scripts, styles and event handler
// attributes never reach the output.
func SanitizeContent(raw string) []*Node {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	cleaned := contentSanitizer().Sanitize(trimmed)
	if strings.TrimSpace(cleaned) == "" {
		return nil
	}

	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	parsed, err := html.ParseFragment(strings.NewReader(cleaned), context)
	if err != nil {
		// bluemonday output is well formed; keep the text rather than drop it.
		return []*Node{Text(cleaned)}
	}

	out := make([]*Node, 0, len(parsed))
	for _, node := range parsed {
		if converted := fromHTML(node); converted != nil {
			out = append(out, converted)
		}
	}
	return out
}

func contentSanitizer() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.RequireNoReferrerOnLinks(true)
		contentPolicy = policy
	})
	return contentPolicy
}

func toHTML(n *Node) []*html.Node {
	switch n.Type {
	case TextNode:
		return []*html.Node{{Type: html.TextNode, Data: n.Data}}
	case FragmentNode:
		var out []*html.Node
		for _, child := range n.Children {
			out = append(out, toHTML(child)...)
		}
		return out
	case ElementNode:
		el := &html.Node{
			Type:     html.ElementNode,
			Data:     n.Tag,
			DataAtom: atom.Lookup([]byte(n.Tag)),
		}
		for _, attr := range n.Attrs {
			el.Attr = append(el.Attr, html.Attribute{Key: attr.Key, Val: attr.Val})
		}
		for _, child := range n.Children {
			for _, converted := range toHTML(child) {
				el.AppendChild(converted)
			}
		}
		return []*html.Node{el}
	default:
		return nil
	}
}

func fromHTML(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		return Text(n.Data)
	case html.ElementNode:
		attrs := make([]Attr, 0, len(n.Attr))
		for _, attr := range n.Attr {
			attrs = append(attrs, Attr{Key: attr.Key, Val: attr.Val})
		}
		var children []*Node
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			children = append(children, fromHTML(child))
		}
		return Element(n.Data, attrs, children...)
	default:
		return nil
	}
}
