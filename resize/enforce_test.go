package resize

import (
	"testing"

	"github.com/aerissecure/tableresize/dom"
	"github.com/aerissecure/tableresize/warehouse"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforcePixels(t *testing.T) {
	table, _, m := percentTable(t)

	require.NoError(t, EnforcePixels(table, m))
	assert.Equal(t, "400px", tableWidth(table))
	assert.Empty(t, cmp.Diff([]float64{100, 100, 100, 100}, declaredWidths(t, table), approx))
	assert.Equal(t, "100px", declaredStyle(t, warehouse.FromTable(table).FirstRowCells()[0].Element))
}

func TestEnforcePercentage(t *testing.T) {
	table, _, m := fixture(t, `<div style="width: 800px"><table width="400"><tr>
		<td width="100">a</td><td style="width: 300px">b</td>
	</tr></table></div>`)

	require.NoError(t, EnforcePercentage(table, m))
	assert.Equal(t, "50%", tableWidth(table))
	_, legacy := dom.Attr(table, "width")
	assert.False(t, legacy)
	assert.Empty(t, cmp.Diff([]float64{25, 75}, declaredWidths(t, table), approx))
}

func TestEnforceNone(t *testing.T) {
	table, _, _ := fixture(t, `<table width="400" style="width: 400px; border: 1px solid">
		<colgroup><col style="width: 100px"></colgroup>
		<tr><td width="100">a</td><td style="width: 300px; color: red">b</td></tr>
	</table>`)

	require.NoError(t, EnforceNone(table))
	w := warehouse.FromTable(table)
	for _, n := range append(w.Columns(), table) {
		_, ok := dom.DeclaredWidth(n)
		assert.False(t, ok)
	}
	for _, c := range w.Cells() {
		_, ok := dom.DeclaredWidth(c.Element)
		assert.False(t, ok)
	}
	v, _ := dom.GetStyle(table, "border")
	assert.Equal(t, "1px solid", v)
}

func TestEnforceRejectsNonTables(t *testing.T) {
	div := dom.Element("div")
	assert.ErrorIs(t, EnforcePixels(div, nil), ErrNotTable)
	assert.ErrorIs(t, EnforcePercentage(div, nil), ErrNotTable)
	assert.ErrorIs(t, EnforceNone(div), ErrNotTable)
}
