package resize

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aerissecure/tableresize/dom"
	"golang.org/x/net/html"
)

var ErrInvalidDimensions = errors.New("rows and columns must be positive")

// RenderOptions controls the markup of a new table.
type RenderOptions struct {
	Styles     map[string]string // inline styles on the <table>
	Attributes map[string]string // attributes on the <table>
	// Percentages sizes the columns as equal shares of the table.
	Percentages bool
	// PixelWidth, when positive and Percentages is false, sizes the table
	// and its columns in pixels.
	PixelWidth float64
}

// Render builds an empty rows x columns table ready for insertion. The first
// headerRows rows go in a <thead>; header rows and the first headerColumns
// cells of every row are <th>.
func Render(rows, columns, headerRows, headerColumns int, opts RenderOptions) (*html.Node, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, columns)
	}
	headerRows = clampInt(headerRows, 0, rows)
	headerColumns = clampInt(headerColumns, 0, columns)

	table := dom.Element("table")
	for _, k := range sortedKeys(opts.Attributes) {
		dom.SetAttr(table, k, opts.Attributes[k])
	}
	for _, k := range sortedKeys(opts.Styles) {
		dom.SetStyle(table, k, opts.Styles[k])
	}

	var cellWidth string
	switch {
	case opts.Percentages:
		if _, ok := dom.GetStyle(table, "width"); !ok {
			dom.SetStyle(table, "width", "100%")
		}
		cellWidth = dom.Percent(100 / float64(columns))
	case opts.PixelWidth > 0:
		dom.SetStyle(table, "width", dom.Px(opts.PixelWidth))
		cellWidth = dom.Px(opts.PixelWidth / float64(columns))
	}

	var thead *html.Node
	tbody := dom.Element("tbody")
	for r := 0; r < rows; r++ {
		tr := dom.Element("tr")
		for c := 0; c < columns; c++ {
			tag, scope := "td", ""
			switch {
			case r < headerRows:
				tag, scope = "th", "col"
			case c < headerColumns:
				tag, scope = "th", "row"
			}
			cell := dom.Element(tag)
			if scope != "" {
				dom.SetAttr(cell, "scope", scope)
			}
			if cellWidth != "" {
				dom.SetStyle(cell, "width", cellWidth)
			}
			tr.AppendChild(dom.Append(cell, dom.Element("br")))
		}
		if r < headerRows {
			if thead == nil {
				thead = dom.Element("thead")
			}
			thead.AppendChild(tr)
			continue
		}
		tbody.AppendChild(tr)
	}
	dom.Append(table, thead)
	if tbody.FirstChild != nil {
		table.AppendChild(tbody)
	}
	return table, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
