package xlsx

import (
	"bytes"
	"testing"

	"github.com/aerissecure/tableresize/dom"
	"github.com/aerissecure/tableresize/layout"
	"github.com/aerissecure/tableresize/tablesize"
	"github.com/aerissecure/tableresize/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/spreadsheet"
)

// workbook builds a small sheet:
//
//	A1:B1 merged "Title", C1 "x"
//	A2 "a", B2 "b", C2 "c" (column C hidden)
//	A3 "line1\nline2"
func workbook(t *testing.T) *bytes.Reader {
	t.Helper()
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName("Data")

	sheet.Cell("A1").SetString("Title")
	sheet.Cell("C1").SetString("x")
	sheet.Cell("A2").SetString("a")
	sheet.Cell("B2").SetString("b")
	sheet.Cell("C2").SetString("c")
	sheet.Cell("A3").SetString("line1\nline2")
	sheet.AddMergedCells("A1", "B1")

	colA := sheet.Column(1).X()
	colA.WidthAttr = unioffice.Float64(20)
	colA.CustomWidthAttr = unioffice.Bool(true)
	sheet.Column(3).X().HiddenAttr = unioffice.Bool(true)

	var buf bytes.Buffer
	require.NoError(t, wb.Save(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestParseWorkbookModel(t *testing.T) {
	r := workbook(t)
	m, err := ParseWorkbookModel(r, r.Size())
	require.NoError(t, err)
	require.Len(t, m.Sheets, 1)

	s := m.Sheets[0]
	assert.Equal(t, "Data", s.Name)
	require.Len(t, s.ColWidths, 3)
	assert.InDelta(t, 20*charWidthPx, s.ColWidths[0], 1e-9)
	assert.InDelta(t, defaultColChars*charWidthPx, s.ColWidths[1], 1e-9)
	assert.Equal(t, []bool{false, false, true}, s.ColHidden)

	require.Len(t, s.Rows, 3)
	title := s.Rows[0].Cells[0]
	require.NotNil(t, title)
	assert.Equal(t, RenderCell{Ref: "A1", Value: "Title", ColSpan: 2, RowSpan: 1}, *title)
	assert.True(t, s.Rows[0].Covered[1])
	assert.Nil(t, s.Rows[0].Cells[1])
}

func TestSheetTable(t *testing.T) {
	r := workbook(t)
	m, err := ParseWorkbookModel(r, r.Size())
	require.NoError(t, err)
	s := m.Sheets[0]

	table := SheetTable(s)
	w := warehouse.FromTable(table)
	assert.Equal(t, 2, w.ColumnCount(), "hidden column C is left out")
	assert.Equal(t, 3, w.RowCount())
	assert.False(t, w.Irregular())

	size := tablesize.GetTableSize(table, layout.NewStatic(1024))
	assert.Equal(t, tablesize.Pixel, size.Label())
	assert.InDelta(t, s.ColWidths[0]+s.ColWidths[1], size.Width(), 1e-3)

	title, ok := w.CellAt(0, 1)
	require.True(t, ok)
	assert.Equal(t, "Title", dom.TextContent(title.Element))
	v, _ := dom.GetStyle(title.Element, "width")
	assert.Equal(t, dom.Px(s.ColWidths[0]+s.ColWidths[1]), v)

	multi, ok := w.CellAt(2, 0)
	require.True(t, ok)
	assert.Len(t, dom.Children(multi.Element, "br"), 1)
	assert.Equal(t, "line1line2", dom.TextContent(multi.Element))
}

func TestToHTML(t *testing.T) {
	r := workbook(t)
	out, err := ToHTML(r, r.Size())
	require.NoError(t, err)
	assert.Contains(t, out, `data-name="Data"`)
	assert.Contains(t, out, `colspan="2"`)
	assert.NotContains(t, out, ">c<", "hidden column values are dropped")
}

func TestParseWorkbookModelRejectsGarbage(t *testing.T) {
	r := bytes.NewReader([]byte("not a workbook"))
	_, err := ParseWorkbookModel(r, r.Size())
	assert.Error(t, err)
}
