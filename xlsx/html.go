package xlsx

import (
	"strconv"
	"strings"

	"github.com/aerissecure/tableresize/dom"
	"golang.org/x/net/html"
)

// SheetTable renders a sheet as a pixel-sized table. Hidden columns are left
// out, so every column in the result can be resized. Each cell declares the
// width of the columns it spans.
func SheetTable(s RenderSheet) *html.Node {
	visible := make([]int, 0, len(s.ColWidths))
	for i := range s.ColWidths {
		if !s.ColHidden[i] {
			visible = append(visible, i)
		}
	}

	table := dom.Element("table", "class", "sheet-table")
	dom.SetStyle(table, "width", dom.Px(s.VisibleWidth()))
	dom.SetStyle(table, "border-collapse", "collapse")
	dom.SetStyle(table, "table-layout", "fixed")

	colgroup := dom.Element("colgroup")
	for _, c := range visible {
		col := dom.Element("col")
		dom.SetStyle(col, "width", dom.Px(s.ColWidths[c]))
		colgroup.AppendChild(col)
	}
	table.AppendChild(colgroup)

	tbody := dom.Element("tbody")
	for _, row := range s.Rows {
		tr := dom.Element("tr")
		dom.SetStyle(tr, "height", dom.Px(row.HeightPx))
		if row.Hidden {
			dom.SetStyle(tr, "display", "none")
		}
		for _, c := range visible {
			if row.Covered[c] {
				continue
			}
			cell := row.Cells[c]
			td := dom.Element("td")
			if cell == nil {
				dom.SetStyle(td, "width", dom.Px(s.ColWidths[c]))
				tr.AppendChild(td)
				continue
			}
			span, width := visibleSpan(s, c, cell.ColSpan)
			if span > 1 {
				dom.SetAttr(td, "colspan", strconv.Itoa(span))
			}
			if cell.RowSpan > 1 {
				dom.SetAttr(td, "rowspan", strconv.Itoa(cell.RowSpan))
			}
			dom.SetAttr(td, "data-cell", cell.Ref)
			dom.SetStyle(td, "width", dom.Px(width))
			appendLines(td, cell.Value)
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	return table
}

// visibleSpan counts the visible columns in [from, from+span) and their width.
func visibleSpan(s RenderSheet, from, span int) (int, float64) {
	n, width := 0, 0.0
	for c := from; c < from+span && c < len(s.ColWidths); c++ {
		if !s.ColHidden[c] {
			n++
			width += s.ColWidths[c]
		}
	}
	return n, width
}

// appendLines adds text to n, turning Excel's explicit line breaks into <br>.
func appendLines(n *html.Node, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			n.AppendChild(dom.Element("br"))
		}
		if line != "" {
			n.AppendChild(dom.Text(line))
		}
	}
}

// RenderWorkbook builds an HTML document with one resizable table per sheet.
func RenderWorkbook(m WorkbookModel) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	body := dom.Element("body")
	doc.AppendChild(dom.Append(dom.Element("html"), dom.Element("head"), body))

	for _, sheet := range m.Sheets {
		div := dom.Element("div", "class", "sheet", "data-name", sheet.Name)
		wrap := dom.Element("div")
		dom.SetStyle(wrap, "width", "100%")
		dom.SetStyle(wrap, "overflow-x", "auto")
		body.AppendChild(dom.Append(div, dom.Append(wrap, SheetTable(sheet))))
	}
	return doc
}
