package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesAndRender(t *testing.T) {
	root, err := ParseString(`<div><table><tr><td><table></table></td></tr></table></div>`)
	require.NoError(t, err)

	tables := Tables(root)
	require.Len(t, tables, 2)
	assert.Equal(t, "div", ParentElement(tables[0]).Data)
	assert.Equal(t, tables[0], Closest(ParentElement(tables[1]), "table"))
	assert.Equal(t, tables[0], Closest(tables[0], "table"))
	assert.Nil(t, Closest(ParentElement(tables[0]), "table"))

	out, err := RenderString(tables[1])
	require.NoError(t, err)
	assert.Equal(t, "<table></table>", out)
}

func TestChildren(t *testing.T) {
	root, err := ParseString(`<table><colgroup><col><col></colgroup><tbody><tr><td>x</td></tr></tbody></table>`)
	require.NoError(t, err)
	table := Tables(root)[0]

	assert.Len(t, Children(table), 2)
	groups := Children(table, "colgroup")
	require.Len(t, groups, 1)
	assert.Len(t, Children(groups[0], "col"), 2)
	assert.Empty(t, Children(table, "thead"))
	assert.Empty(t, Children(nil))
}

func TestAttributes(t *testing.T) {
	n := Element("td", "colspan", "3", "rowspan", "x", "dangling")
	assert.Len(t, n.Attr, 2)
	assert.Equal(t, 3, IntAttr(n, "colspan", 1))
	assert.Equal(t, 1, IntAttr(n, "rowspan", 1))
	assert.Equal(t, 7, IntAttr(n, "missing", 7))

	SetAttr(n, "colspan", "2")
	SetAttr(n, "width", "40")
	v, ok := Attr(n, "colspan")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	RemoveAttr(n, "width")
	_, ok = Attr(n, "width")
	assert.False(t, ok)
	_, ok = Attr(nil, "width")
	assert.False(t, ok)
}

func TestAppend(t *testing.T) {
	row := Append(Element("tr"), Element("td"), nil, Append(Element("td"), Text("b")))
	out, err := RenderString(row)
	require.NoError(t, err)
	assert.Equal(t, "<tr><td></td><td>b</td></tr>", out)
}
