package warehouse

import (
	"testing"

	"github.com/aerissecure/tableresize/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseTable(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := dom.ParseString(markup)
	require.NoError(t, err)
	tables := dom.Tables(root)
	require.NotEmpty(t, tables)
	return tables[0]
}

// layout renders the owner of every slot as the text of its element.
func layout(w *Warehouse) [][]string {
	out := make([][]string, w.RowCount())
	for r := range out {
		out[r] = make([]string, w.ColumnCount())
		for c := range out[r] {
			if cell, ok := w.CellAt(r, c); ok {
				out[r][c] = dom.TextContent(cell.Element)
			}
		}
	}
	return out
}

func TestFromTableSimple(t *testing.T) {
	w := FromTable(parseTable(t, `<table><tbody>
		<tr><td>a</td><td>b</td></tr>
		<tr><td>c</td><td>d</td></tr>
	</tbody></table>`))

	assert.Equal(t, 2, w.RowCount())
	assert.Equal(t, 2, w.ColumnCount())
	assert.False(t, w.Irregular())
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, layout(w))
	assert.Len(t, w.Cells(), 4)
	require.Len(t, w.FirstRowCells(), 2)
	assert.Equal(t, "b", dom.TextContent(w.FirstRowCells()[1].Element))
}

func TestFromTableSpans(t *testing.T) {
	w := FromTable(parseTable(t, `<table>
		<tr><td rowspan="2">a</td><td colspan="2">b</td></tr>
		<tr><td>c</td><td>d</td></tr>
		<tr><td>e</td><td>f</td><td>g</td></tr>
	</table>`))

	assert.Equal(t, 3, w.ColumnCount())
	assert.Equal(t, [][]string{
		{"a", "b", "b"},
		{"a", "c", "d"},
		{"e", "f", "g"},
	}, layout(w))

	c, ok := w.CellAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, Cell{Element: c.Element, Row: 1, Column: 1, RowSpan: 1, ColSpan: 1}, *c)

	// Column 1 is sampled from "c", the first single-span cell starting there.
	c, ok = w.ColumnCell(1)
	require.True(t, ok)
	assert.Equal(t, "c", dom.TextContent(c.Element))
}

func TestFromTableColumnCellFallsBackToSpanningCell(t *testing.T) {
	w := FromTable(parseTable(t, `<table><tr><td colspan="2">wide</td></tr></table>`))
	require.Equal(t, 2, w.ColumnCount())

	c, ok := w.ColumnCell(1)
	require.True(t, ok)
	assert.Equal(t, "wide", dom.TextContent(c.Element))
	_, ok = w.ColumnCell(2)
	assert.False(t, ok)
}

func TestFromTableIrregularRows(t *testing.T) {
	w := FromTable(parseTable(t, `<table>
		<tr><td>a</td><td>b</td><td>c</td></tr>
		<tr><td>d</td></tr>
	</table>`))

	assert.True(t, w.Irregular())
	assert.Equal(t, 3, w.ColumnCount())
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d", "", ""}}, layout(w))
	_, ok := w.CellAt(1, 2)
	assert.False(t, ok, "missing cells are placeholders")
}

func TestFromTableWithoutTbody(t *testing.T) {
	// Built by hand: the HTML parser would insert the <tbody>.
	table := dom.Element("table")
	for _, text := range []string{"a", "b"} {
		tr := dom.Append(dom.Element("tr"), dom.Append(dom.Element("td"), dom.Text(text)), dom.Element("th"))
		table.AppendChild(tr)
	}

	w := FromTable(table)
	assert.Equal(t, 2, w.RowCount())
	assert.Equal(t, 2, w.ColumnCount())
	assert.Equal(t, "", w.Rows()[0].Section)
}

func TestFromTableSpanClamping(t *testing.T) {
	w := FromTable(parseTable(t, `<table>
		<thead><tr><td rowspan="5">h</td><td colspan="-3">x</td></tr></thead>
		<tbody>
			<tr><td rowspan="0">a</td><td>b</td></tr>
			<tr><td>c</td></tr>
		</tbody>
	</table>`))

	assert.Equal(t, [][]string{
		{"h", "x"},
		{"a", "b"},
		{"a", "c"},
	}, layout(w), "rowspans stop at the end of their section; rowspan=0 fills it")
	assert.Equal(t, "thead", w.Rows()[0].Section)
	assert.Equal(t, "tbody", w.Rows()[2].Section)
}

func TestFromTableCols(t *testing.T) {
	w := FromTable(parseTable(t, `<table>
		<colgroup><col style="width: 100px"><col span="2" style="width: 50px"></colgroup>
		<tr><td>a</td><td>b</td><td>c</td></tr>
	</table>`))

	cols := w.Columns()
	require.Len(t, cols, 3)
	assert.Same(t, cols[1], cols[2])
	v, _ := dom.GetStyle(cols[0], "width")
	assert.Equal(t, "100px", v)
}

func TestFromTableIgnoresNestedTables(t *testing.T) {
	w := FromTable(parseTable(t, `<table>
		<tr><td>a<table><tr><td>x</td><td>y</td><td>z</td></tr></table></td></tr>
	</table>`))

	assert.Equal(t, 1, w.RowCount())
	assert.Equal(t, 1, w.ColumnCount())
}

func TestFromTableEmpty(t *testing.T) {
	w := FromTable(dom.Element("table"))
	assert.Equal(t, 0, w.RowCount())
	assert.Equal(t, 0, w.ColumnCount())
	assert.Nil(t, w.FirstRowCells())
	_, ok := w.CellAt(0, 0)
	assert.False(t, ok)
}
