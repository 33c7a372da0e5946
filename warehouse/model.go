package warehouse

import (
	"fmt"

	"golang.org/x/net/html"
)

// Logical grid of a table. Spans are resolved so that every (row, column)
// slot has at most one owner; slots without an owner are nil and count as
// zero-width placeholders.

// Cell is a <td> or <th> placed in the grid.
type Cell struct {
	Element *html.Node
	Row     int // first row occupied
	Column  int // first column occupied
	RowSpan int // >= 1
	ColSpan int // >= 1
}

func (c Cell) String() string {
	return fmt.Sprintf("Row: %d, Column: %d, RowSpan: %d, ColSpan: %d", c.Row, c.Column, c.RowSpan, c.ColSpan)
}

// Row is one <tr> of the table.
type Row struct {
	Element *html.Node
	Section string  // "thead" | "tbody" | "tfoot", "" for a bare <tr>
	Cells   []*Cell // cells starting in this row, document order
}

func (r Row) String() string {
	return fmt.Sprintf("Section: %q, Cells: %d", r.Section, len(r.Cells))
}

// Warehouse is a read-only view over one table. Build a new one after the
// table's structure changes; it is never updated in place.
type Warehouse struct {
	table     *html.Node
	rows      []Row
	grid      [][]*Cell // [row][column], every row has len == columns
	cols      []*html.Node
	columns   int
	irregular bool
}

func (w *Warehouse) String() string {
	return fmt.Sprintf("Rows: %d, Columns: %d, Cols: %d, Irregular: %t", len(w.rows), w.columns, len(w.cols), w.irregular)
}
