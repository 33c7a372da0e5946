package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Declaration is one property of an inline style attribute (e.g. width: 50%).
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important"
	}
	return d.Property + ": " + d.Value
}

// ParseStyle splits a style attribute into declarations, keeping their order.
// Semicolons inside quotes or parentheses (url(data:...;...)) do not split.
// Malformed pieces without a colon are dropped.
func ParseStyle(s string) []Declaration {
	var out []Declaration
	for _, part := range splitDeclarations(s) {
		i := strings.IndexByte(part, ':')
		if i < 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(part[:i]))
		val := strings.TrimSpace(part[i+1:])
		if prop == "" {
			continue
		}
		d := Declaration{Property: prop, Value: val}
		if j := strings.LastIndex(strings.ToLower(val), "!important"); j >= 0 {
			d.Value = strings.TrimSpace(val[:j])
			d.Important = true
		}
		out = append(out, d)
	}
	return out
}

func splitDeclarations(s string) []string {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == ';' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// FormatStyle is the inverse of ParseStyle.
func FormatStyle(decls []Declaration) string {
	if len(decls) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.String())
		b.WriteByte(';')
	}
	return b.String()
}

// Style returns the inline declarations of n.
func Style(n *html.Node) []Declaration {
	s, _ := Attr(n, "style")
	return ParseStyle(s)
}

// GetStyle returns the inline value of prop on n. When a property is declared
// more than once the last declaration wins, as in CSS.
func GetStyle(n *html.Node, prop string) (string, bool) {
	var (
		val   string
		found bool
	)
	for _, d := range Style(n) {
		if d.Property == prop {
			val, found = d.Value, true
		}
	}
	return val, found
}

// SetStyle sets prop on n, replacing every earlier declaration of it and
// leaving the other declarations untouched.
func SetStyle(n *html.Node, prop, value string) {
	decls := Style(n)
	out := decls[:0]
	replaced := false
	for _, d := range decls {
		if d.Property != prop {
			out = append(out, d)
			continue
		}
		if !replaced {
			out = append(out, Declaration{Property: prop, Value: value})
			replaced = true
		}
	}
	if !replaced {
		out = append(out, Declaration{Property: prop, Value: value})
	}
	SetAttr(n, "style", FormatStyle(out))
}

// RemoveStyle deletes prop from n's inline style. An empty style attribute is
// removed altogether.
func RemoveStyle(n *html.Node, prop string) {
	if _, ok := Attr(n, "style"); !ok {
		return
	}
	decls := Style(n)
	out := decls[:0]
	for _, d := range decls {
		if d.Property != prop {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", FormatStyle(out))
}

// DeclaredWidth returns the author-declared width of n: the inline style
// first, then the legacy width attribute.
func DeclaredWidth(n *html.Node) (string, bool) {
	if v, ok := GetStyle(n, "width"); ok && v != "" {
		return v, true
	}
	if v, ok := Attr(n, "width"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), true
	}
	return "", false
}
