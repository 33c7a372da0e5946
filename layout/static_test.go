package layout

import (
	"testing"

	"github.com/aerissecure/tableresize/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := dom.ParseString(markup)
	require.NoError(t, err)
	return root
}

func cells(table *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if dom.IsElement(c, "td", "th") {
				out = append(out, c)
				continue
			}
			if !dom.IsElement(c, "table") {
				walk(c)
			}
		}
	}
	walk(table)
	return out
}

func TestStaticViewport(t *testing.T) {
	s := NewStatic(800)
	assert.Equal(t, 800.0, s.Width(nil))
	assert.Equal(t, 800.0, s.Viewport())
}

func TestStaticPercentTable(t *testing.T) {
	root := parse(t, `<div style="width: 800px"><table style="width: 50%"><tr>
		<td style="width: 25%">a</td><td>b</td>
	</tr></table></div>`)
	table := dom.Tables(root)[0]
	s := NewStatic(1024)

	assert.Equal(t, 800.0, s.Width(dom.ParentElement(table)))
	assert.Equal(t, 400.0, s.Width(table))
	tds := cells(table)
	require.Len(t, tds, 2)
	assert.Equal(t, 100.0, s.Width(tds[0]))
	assert.Equal(t, 200.0, s.Width(tds[1]), "auto cells split the table evenly")
}

func TestStaticAutoTable(t *testing.T) {
	s := NewStatic(640)

	summed := dom.Tables(parse(t, `<table><tr><td style="width: 100px">a</td><td width="50">b</td></tr></table>`))[0]
	assert.Equal(t, 150.0, s.Width(summed))

	partial := dom.Tables(parse(t, `<table><tr><td style="width: 100px">a</td><td>b</td></tr></table>`))[0]
	assert.Equal(t, 640.0, s.Width(partial), "falls back to the container")
}

func TestStaticColsAndSpans(t *testing.T) {
	root := parse(t, `<table style="width: 300px">
		<colgroup><col style="width: 100px"><col></colgroup>
		<tr><td colspan="2">wide</td><td>c</td></tr>
	</table>`)
	table := dom.Tables(root)[0]
	s := NewStatic(800)

	var cols []*html.Node
	for _, cg := range dom.Children(table, "colgroup") {
		cols = append(cols, dom.Children(cg, "col")...)
	}
	require.Len(t, cols, 2)
	assert.Equal(t, 100.0, s.Width(cols[0]))
	assert.Equal(t, 100.0, s.Width(cols[1]))

	tds := cells(table)
	assert.Equal(t, 200.0, s.Width(tds[0]))
	assert.Equal(t, 100.0, s.Width(tds[1]))
}

func TestStaticReset(t *testing.T) {
	root := parse(t, `<table style="width: 300px"><tr><td>a</td></tr></table>`)
	table := dom.Tables(root)[0]
	s := NewStatic(800)

	assert.Equal(t, 300.0, s.Width(table))
	dom.SetStyle(table, "width", "350px")
	assert.Equal(t, 300.0, s.Width(table), "memoized")
	s.Reset()
	assert.Equal(t, 350.0, s.Width(table))
}
