package dom

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Thin helpers over golang.org/x/net/html. Only what the resize engine needs
// to find tables and read or write their width declarations lives here.

// Parse reads a complete HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*html.Node, error) {
	return html.Parse(strings.NewReader(s))
}

// Render writes n and its subtree as HTML.
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// RenderString is Render into a string.
func RenderString(n *html.Node) (string, error) {
	var b bytes.Buffer
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// -----------------------------------------------------------------------------
// Traversal
// -----------------------------------------------------------------------------

// IsElement reports whether n is an element with one of the given tag names.
// With no names it reports whether n is an element at all.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if n.Data == t {
			return true
		}
	}
	return false
}

// Children returns the element children of n matching tags (all elements when
// tags is empty).
func Children(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	if n == nil {
		return out
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c, tags...) {
			out = append(out, c)
		}
	}
	return out
}

// Tables returns every <table> under root in document order, nested tables
// included.
func Tables(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if IsElement(n, "table") {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// ParentElement returns the closest ancestor element of n, or nil.
func ParentElement(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

// Closest returns n or its nearest ancestor with the given tag name.
func Closest(n *html.Node, tag string) *html.Node {
	for p := n; p != nil; p = p.Parent {
		if IsElement(p, tag) {
			return p
		}
	}
	return nil
}

// TextContent concatenates the text nodes below n.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return b.String()
}

// -----------------------------------------------------------------------------
// Attributes
// -----------------------------------------------------------------------------

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// IntAttr parses attribute key as an integer. Missing or malformed values
// return def.
func IntAttr(n *html.Node, key string, def int) int {
	v, ok := Attr(n, key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// SetAttr sets attribute key on n, replacing an existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute key from n.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// -----------------------------------------------------------------------------
// Builders
// -----------------------------------------------------------------------------

// Element creates a detached element. attrs are key/value pairs; a trailing
// odd key is ignored.
func Element(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// Text creates a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Append adds children to parent and returns parent.
func Append(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
	return parent
}
