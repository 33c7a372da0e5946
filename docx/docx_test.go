package docx

import (
	"bytes"
	"testing"

	"github.com/aerissecure/tableresize/dom"
	"github.com/aerissecure/tableresize/layout"
	"github.com/aerissecure/tableresize/tablesize"
	"github.com/aerissecure/tableresize/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/ofc/sharedTypes"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

func addText(c document.Cell, text string) {
	c.AddParagraph().AddRun().AddText(text)
}

func grid(t document.Table, twips ...uint64) {
	g := wml.NewCT_TblGrid()
	for i := range twips {
		g.GridCol = append(g.GridCol, &wml.CT_TblGridCol{
			WAttr: &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: &twips[i]},
		})
	}
	t.X().TblGrid = g
}

func tableWidthAttr(kind wml.ST_TblWidth, v int64) *wml.CT_TblWidth {
	return &wml.CT_TblWidth{
		TypeAttr: kind,
		WAttr: &wml.ST_MeasurementOrPercent{
			ST_DecimalNumberOrPercent: &wml.ST_DecimalNumberOrPercent{ST_UnqualifiedPercentage: &v},
		},
	}
}

// testDocument builds:
//
//	Heading1 "Report"
//	50% table, grid 100px | 100px
//	  "head" spanning both columns
//	  "a" (vMerge restart) | "b"
//	  (vMerge continue)    | "c"
func testDocument(t *testing.T) *bytes.Reader {
	t.Helper()
	doc := document.New()

	heading := doc.AddParagraph()
	heading.SetStyle("Heading1")
	heading.AddRun().AddText("Report")

	tbl := doc.AddTable()
	tbl.Properties().X().TblW = tableWidthAttr(wml.ST_TblWidthPct, 2500)
	grid(tbl, 1500, 1500)

	head := tbl.AddRow().AddCell()
	head.Properties().X().GridSpan = &wml.CT_DecimalNumber{ValAttr: 2}
	addText(head, "head")

	row := tbl.AddRow()
	a := row.AddCell()
	a.Properties().X().VMerge = &wml.CT_VMerge{ValAttr: wml.ST_MergeRestart}
	addText(a, "a")
	addText(row.AddCell(), "b")

	row = tbl.AddRow()
	cont := row.AddCell()
	cont.Properties().X().VMerge = &wml.CT_VMerge{ValAttr: wml.ST_MergeContinue}
	addText(cont, "")
	addText(row.AddCell(), "c")

	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestParseDocumentModel(t *testing.T) {
	r := testDocument(t)
	m, err := ParseDocumentModel(r, r.Size())
	require.NoError(t, err)

	require.NotEmpty(t, m.Blocks)
	require.NotNil(t, m.Blocks[0].Paragraph)
	assert.Equal(t, RenderParagraph{Text: "Report", HeadingLevel: 1}, *m.Blocks[0].Paragraph)

	require.Len(t, m.Tables, 1)
	tbl := m.Tables[0]
	assert.Equal(t, TableWidth{Kind: WidthPercent, Value: 50}, tbl.Width)
	assert.Equal(t, []float64{100, 100}, tbl.Grid)

	require.Len(t, tbl.Rows, 3)
	require.Len(t, tbl.Rows[0].Cells, 1)
	assert.Equal(t, 2, tbl.Rows[0].Cells[0].ColSpan)

	require.Len(t, tbl.Rows[1].Cells, 2)
	assert.Equal(t, 2, tbl.Rows[1].Cells[0].RowSpan)
	assert.Equal(t, "a", tbl.Rows[1].Cells[0].Paragraphs[0].Text)

	require.Len(t, tbl.Rows[2].Cells, 1, "continuation cell is folded into its master")
	assert.Equal(t, "c", tbl.Rows[2].Cells[0].Paragraphs[0].Text)
}

func TestTableNodePercent(t *testing.T) {
	r := testDocument(t)
	m, err := ParseDocumentModel(r, r.Size())
	require.NoError(t, err)
	require.Len(t, m.Tables, 1)

	table := TableNode(m.Tables[0])
	v, _ := dom.GetStyle(table, "width")
	assert.Equal(t, "50%", v)
	assert.Equal(t, tablesize.Percent, tablesize.GetTableSize(table, layout.NewStatic(1024)).Label())

	w := warehouse.FromTable(table)
	assert.Equal(t, 3, w.RowCount())
	assert.Equal(t, 2, w.ColumnCount())
	assert.False(t, w.Irregular())

	for _, col := range w.Columns() {
		v, _ := dom.GetStyle(col, "width")
		assert.Equal(t, "50%", v)
	}
	head, ok := w.CellAt(0, 0)
	require.True(t, ok)
	v, _ = dom.GetStyle(head.Element, "width")
	assert.Equal(t, "100%", v)

	c, ok := w.CellAt(2, 1)
	require.True(t, ok)
	assert.Equal(t, "c", dom.TextContent(c.Element))
	v, _ = dom.GetStyle(c.Element, "width")
	assert.Equal(t, "50%", v)
}

func TestTableNodePixelWithoutGrid(t *testing.T) {
	tbl := RenderTable{
		Width: TableWidth{Kind: WidthPixel, Value: 200},
		Rows: []RenderTableRow{
			{Cells: []RenderTableCell{
				{ColSpan: 1, RowSpan: 1, WidthPx: 50},
				{ColSpan: 1, RowSpan: 1, WidthPx: 150},
			}},
		},
	}
	table := TableNode(tbl)
	size := tablesize.GetTableSize(table, layout.NewStatic(1024))
	assert.Equal(t, tablesize.Pixel, size.Label())
	assert.InDelta(t, 200, size.Width(), 1e-9)

	w := warehouse.FromTable(table)
	assert.Equal(t, []float64{50, 150}, size.Widths(w, 0))
}

func TestTableNodeAuto(t *testing.T) {
	table := TableNode(RenderTable{
		Grid: []float64{80},
		Rows: []RenderTableRow{{Cells: []RenderTableCell{{ColSpan: 1, RowSpan: 1}}}},
	})
	_, ok := dom.GetStyle(table, "width")
	assert.False(t, ok)
	assert.Equal(t, tablesize.None, tablesize.GetTableSize(table, layout.NewStatic(1024)).Label())
}

func TestTableWidth(t *testing.T) {
	assert.Equal(t, TableWidth{}, tableWidth(nil))
	assert.Equal(t, TableWidth{Kind: WidthPixel, Value: 200}, tableWidth(tableWidthAttr(wml.ST_TblWidthDxa, 3000)))
	assert.Equal(t, TableWidth{Kind: WidthPercent, Value: 100}, tableWidth(tableWidthAttr(wml.ST_TblWidthPct, 5000)))
	assert.Equal(t, TableWidth{}, tableWidth(tableWidthAttr(wml.ST_TblWidthAuto, 0)))

	s := "75%"
	pct := &wml.CT_TblWidth{
		TypeAttr: wml.ST_TblWidthPct,
		WAttr:    &wml.ST_MeasurementOrPercent{ST_DecimalNumberOrPercent: &wml.ST_DecimalNumberOrPercent{ST_Percentage: &s}},
	}
	assert.Equal(t, TableWidth{Kind: WidthPercent, Value: 75}, tableWidth(pct))
}

func TestHeadingLevel(t *testing.T) {
	assert.Equal(t, 0, headingLevel("Normal"))
	assert.Equal(t, 2, headingLevel("Heading2"))
	assert.Equal(t, 6, headingLevel("Heading9"))
	assert.Equal(t, 0, headingLevel("HeadingX"))
}

func TestToHTML(t *testing.T) {
	r := testDocument(t)
	out, err := ToHTML(r, r.Size())
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Report</h1>")
	assert.Contains(t, out, `rowspan="2"`)
	assert.Contains(t, out, `colspan="2"`)
}

func TestParseDocumentModelRejectsGarbage(t *testing.T) {
	r := bytes.NewReader([]byte("not a document"))
	_, err := ParseDocumentModel(r, r.Size())
	assert.Error(t, err)
}
