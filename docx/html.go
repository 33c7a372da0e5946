package docx

import (
	"strconv"

	"github.com/aerissecure/tableresize/dom"
	"golang.org/x/net/html"
)

// -----------------------------------------------------------------------------
// Table rendering
// -----------------------------------------------------------------------------

// TableNode renders t as a <table> in the unit family Word declared for it:
// px for dxa widths, % for pct widths and no table width for auto. Columns
// come from the table grid, so cells carry the width of the grid columns they
// span.
func TableNode(t RenderTable) *html.Node {
	table := dom.Element("table", "class", "doc-table")
	dom.SetStyle(table, "border-collapse", "collapse")
	switch t.Width.Kind {
	case WidthPixel:
		dom.SetStyle(table, "width", dom.Px(t.Width.Value))
	case WidthPercent:
		dom.SetStyle(table, "width", dom.Percent(t.Width.Value))
	}

	grid := t.Grid
	if len(grid) == 0 {
		grid = gridFromCells(t)
	}
	total := 0.0
	for _, w := range grid {
		total += w
	}
	format := func(px float64) (string, bool) {
		if px <= 0 {
			return "", false
		}
		if t.Width.Kind == WidthPercent {
			if total <= 0 {
				return "", false
			}
			return dom.Percent(px / total * 100), true
		}
		return dom.Px(px), true
	}

	if len(grid) > 0 {
		colgroup := dom.Element("colgroup")
		for _, w := range grid {
			col := dom.Element("col")
			if v, ok := format(w); ok {
				dom.SetStyle(col, "width", v)
			}
			colgroup.AppendChild(col)
		}
		table.AppendChild(colgroup)
	}

	// grid columns still held by a rowspan from an earlier row
	held := make(map[int]int)

	tbody := dom.Element("tbody")
	for _, row := range t.Rows {
		tr := dom.Element("tr")
		col := 0
		for _, cell := range row.Cells {
			for held[col] > 0 {
				col++
			}
			td := dom.Element("td")
			if cell.ColSpan > 1 {
				dom.SetAttr(td, "colspan", strconv.Itoa(cell.ColSpan))
			}
			if cell.RowSpan > 1 {
				dom.SetAttr(td, "rowspan", strconv.Itoa(cell.RowSpan))
			}
			if v, ok := format(spanWidth(grid, col, cell.ColSpan)); ok {
				dom.SetStyle(td, "width", v)
			}
			appendParagraphs(td, cell.Paragraphs)
			tr.AppendChild(td)

			for c := col; c < col+cell.ColSpan; c++ {
				if cell.RowSpan > 1 {
					held[c] = cell.RowSpan
				}
			}
			col += cell.ColSpan
		}
		for c := range held {
			if held[c]--; held[c] <= 0 {
				delete(held, c)
			}
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	return table
}

// spanWidth sums grid[from:from+span]. It is 0 when the span leaves the grid.
func spanWidth(grid []float64, from, span int) float64 {
	if from+span > len(grid) {
		return 0
	}
	sum := 0.0
	for _, w := range grid[from : from+span] {
		sum += w
	}
	return sum
}

// gridFromCells derives column widths from the first row's cell widths when
// the document has no w:tblGrid.
func gridFromCells(t RenderTable) []float64 {
	if len(t.Rows) == 0 {
		return nil
	}
	var grid []float64
	for _, cell := range t.Rows[0].Cells {
		if cell.WidthPx <= 0 {
			return nil
		}
		for i := 0; i < cell.ColSpan; i++ {
			grid = append(grid, cell.WidthPx/float64(cell.ColSpan))
		}
	}
	return grid
}

func appendParagraphs(n *html.Node, paras []RenderParagraph) {
	if len(paras) == 1 {
		if paras[0].Text != "" {
			n.AppendChild(dom.Text(paras[0].Text))
		}
		return
	}
	for _, p := range paras {
		n.AppendChild(paragraphNode(p))
	}
}

// -----------------------------------------------------------------------------
// Document rendering
// -----------------------------------------------------------------------------

func paragraphNode(p RenderParagraph) *html.Node {
	tag := "p"
	if p.HeadingLevel > 0 {
		tag = "h" + strconv.Itoa(p.HeadingLevel)
	}
	el := dom.Element(tag)
	if p.Text != "" {
		el.AppendChild(dom.Text(p.Text))
	}
	return el
}

// RenderDocument builds an HTML document from the body blocks in order.
func RenderDocument(m DocumentModel) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	body := dom.Element("body")
	doc.AppendChild(dom.Append(dom.Element("html"), dom.Element("head"), body))

	for _, b := range m.Blocks {
		switch {
		case b.Paragraph != nil:
			body.AppendChild(paragraphNode(*b.Paragraph))
		case b.Table != nil:
			body.AppendChild(TableNode(*b.Table))
		}
	}
	return doc
}
