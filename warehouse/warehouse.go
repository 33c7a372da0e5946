package warehouse

import (
	"github.com/aerissecure/tableresize/dom"
	"golang.org/x/net/html"
)

// HTML caps colspan at 1000; rowspan is capped by the row group instead.
const maxColSpan = 1000

// FromTable builds the logical grid of table. It never fails: a missing
// <tbody>, ragged rows and silly span values are all recovered.
func FromTable(table *html.Node) *Warehouse {
	w := &Warehouse{table: table}

	for _, group := range rowGroups(table) {
		w.placeGroup(group)
	}
	for _, cg := range dom.Children(table, "colgroup") {
		for _, col := range dom.Children(cg, "col") {
			span := clampSpan(dom.IntAttr(col, "span", 1), maxColSpan)
			for i := 0; i < span; i++ {
				w.cols = append(w.cols, col)
			}
		}
	}
	// <col> directly under <table> is not valid HTML but editors emit it.
	for _, col := range dom.Children(table, "col") {
		span := clampSpan(dom.IntAttr(col, "span", 1), maxColSpan)
		for i := 0; i < span; i++ {
			w.cols = append(w.cols, col)
		}
	}

	// ---- pad to a rectangle ----
	for _, slots := range w.grid {
		if len(slots) > w.columns {
			w.columns = len(slots)
		}
	}
	for r := range w.grid {
		if len(w.grid[r]) != w.columns {
			w.irregular = true
			w.grid[r] = append(w.grid[r], make([]*Cell, w.columns-len(w.grid[r]))...)
		}
	}
	return w
}

type rowGroup struct {
	section string
	rows    []*html.Node
}

// rowGroups lists the rows of table in document order, grouped by the
// section that bounds their rowspans. Consecutive bare <tr> children form an
// implicit group. Nested tables are never entered.
func rowGroups(table *html.Node) []rowGroup {
	var (
		groups []rowGroup
		bare   *rowGroup
	)
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case dom.IsElement(c, "thead", "tbody", "tfoot"):
			bare = nil
			groups = append(groups, rowGroup{section: c.Data, rows: dom.Children(c, "tr")})
		case dom.IsElement(c, "tr"):
			if bare == nil {
				groups = append(groups, rowGroup{})
				bare = &groups[len(groups)-1]
			}
			bare.rows = append(bare.rows, c)
		}
	}
	return groups
}

func (w *Warehouse) placeGroup(g rowGroup) {
	base := len(w.grid)
	for i := range g.rows {
		w.ensureRow(base + i)
	}
	for i, tr := range g.rows {
		r := base + i
		row := Row{Element: tr, Section: g.section}
		col := 0
		for _, td := range dom.Children(tr, "td", "th") {
			for col < len(w.grid[r]) && w.grid[r][col] != nil {
				col++
			}
			remaining := len(g.rows) - i
			rowSpan := dom.IntAttr(td, "rowspan", 1)
			if rowSpan == 0 {
				rowSpan = remaining
			}
			cell := &Cell{
				Element: td,
				Row:     r,
				Column:  col,
				RowSpan: clampSpan(rowSpan, remaining),
				ColSpan: clampSpan(dom.IntAttr(td, "colspan", 1), maxColSpan),
			}
			w.claim(cell)
			row.Cells = append(row.Cells, cell)
			col += cell.ColSpan
		}
		w.rows = append(w.rows, row)
	}
}

// claim marks the free slots covered by c. Slots already owned by a rowspan
// from above keep their first owner.
func (w *Warehouse) claim(c *Cell) {
	for r := c.Row; r < c.Row+c.RowSpan; r++ {
		w.ensureRow(r)
		for col := c.Column; col < c.Column+c.ColSpan; col++ {
			for len(w.grid[r]) <= col {
				w.grid[r] = append(w.grid[r], nil)
			}
			if w.grid[r][col] == nil {
				w.grid[r][col] = c
			}
		}
	}
}

func (w *Warehouse) ensureRow(r int) {
	for len(w.grid) <= r {
		w.grid = append(w.grid, nil)
	}
}

func clampSpan(v, limit int) int {
	if v < 1 {
		return 1
	}
	if v > limit {
		return limit
	}
	return v
}

// -----------------------------------------------------------------------------
// Queries
// -----------------------------------------------------------------------------

// Table returns the <table> the grid was built from.
func (w *Warehouse) Table() *html.Node { return w.table }

// RowCount is the number of logical rows.
func (w *Warehouse) RowCount() int { return len(w.grid) }

// ColumnCount is the width of the grid after span expansion.
func (w *Warehouse) ColumnCount() int { return w.columns }

// Irregular reports whether some rows were shorter than others and had to be
// padded with placeholders.
func (w *Warehouse) Irregular() bool { return w.irregular }

// Rows returns the <tr> rows in document order.
func (w *Warehouse) Rows() []Row { return w.rows }

// CellAt returns the owner of slot (row, col). ok is false for placeholders
// and out of range slots.
func (w *Warehouse) CellAt(row, col int) (*Cell, bool) {
	if row < 0 || row >= len(w.grid) || col < 0 || col >= w.columns {
		return nil, false
	}
	c := w.grid[row][col]
	return c, c != nil
}

// Cells returns every cell once, in document order.
func (w *Warehouse) Cells() []*Cell {
	var out []*Cell
	for _, r := range w.rows {
		out = append(out, r.Cells...)
	}
	return out
}

// Columns returns the explicit <col> elements, one entry per spanned
// column. It is empty when the table declares none.
func (w *Warehouse) Columns() []*html.Node { return w.cols }

// FirstRowCells returns the cells of the first row; without <col> elements
// they stand in for the column definitions.
func (w *Warehouse) FirstRowCells() []*Cell {
	if len(w.rows) == 0 {
		return nil
	}
	return w.rows[0].Cells
}

// ColumnCell picks the cell used to sample the width of column col: the
// first single-span cell starting there, else the first owner of any slot
// in the column.
func (w *Warehouse) ColumnCell(col int) (*Cell, bool) {
	if col < 0 || col >= w.columns {
		return nil, false
	}
	var fallback *Cell
	for r := range w.grid {
		c := w.grid[r][col]
		if c == nil {
			continue
		}
		if c.Column == col && c.ColSpan == 1 {
			return c, true
		}
		if fallback == nil {
			fallback = c
		}
	}
	return fallback, fallback != nil
}
