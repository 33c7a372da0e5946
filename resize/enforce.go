package resize

import (
	"github.com/aerissecure/tableresize"
	"github.com/aerissecure/tableresize/dom"
	"github.com/aerissecure/tableresize/tablesize"
	"github.com/aerissecure/tableresize/warehouse"
	"golang.org/x/net/html"
)

// EnforcePixels rewrites the widths of table, its <col> elements and its
// cells in pixels, keeping the current layout.
func EnforcePixels(table *html.Node, m tablesize.Measurer) error {
	if !dom.IsElement(table, "table") {
		return ErrNotTable
	}
	w := warehouse.FromTable(table)
	size := tablesize.GetTableSize(table, m)
	widths := size.Widths(w, tableresize.LTR)
	if _, ok := size.(*tablesize.PercentSize); ok {
		for k := range widths {
			widths[k] *= size.PixelWidth() / 100
		}
	}
	setWidth(table, dom.Px(size.PixelWidth()))
	writeColumns(w, widths, dom.Px)
	reset(m)
	return nil
}

// EnforcePercentage rewrites the table width as a percentage of its
// container and the column widths as percentages of the table.
func EnforcePercentage(table *html.Node, m tablesize.Measurer) error {
	if !dom.IsElement(table, "table") {
		return ErrNotTable
	}
	w := warehouse.FromTable(table)
	size := tablesize.GetTableSize(table, m)
	widths := size.Widths(w, tableresize.LTR)
	if _, ok := size.(*tablesize.PercentSize); !ok {
		for k := range widths {
			widths[k] = share(widths[k], size.PixelWidth())
		}
	}
	container := m.Width(dom.ParentElement(table))
	tableWidth := 100.0
	if container > 0 {
		tableWidth = share(size.PixelWidth(), container)
	}
	setWidth(table, dom.Percent(tableWidth))
	writeColumns(w, widths, dom.Percent)
	reset(m)
	return nil
}

// EnforceNone strips every declared width from table, its <col> elements and
// its cells so the browser sizes the table from its content.
func EnforceNone(table *html.Node) error {
	if !dom.IsElement(table, "table") {
		return ErrNotTable
	}
	w := warehouse.FromTable(table)
	clearWidth(table)
	for _, col := range w.Columns() {
		clearWidth(col)
	}
	for _, cell := range w.Cells() {
		clearWidth(cell.Element)
	}
	return nil
}

func share(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

func reset(m tablesize.Measurer) {
	if r, ok := m.(resetter); ok {
		r.Reset()
	}
}
