package xlsx

import (
	"fmt"
)

// Intermediate representation for XLSX. Only what the table needs survives:
// geometry, merges and formatted values. Pixel values are floats so widths
// can be resized without rounding drift.

// RenderCell is the IR for a single cell (or merged master).
type RenderCell struct {
	Ref     string // e.g. "A1"
	Value   string // already formatted value
	ColSpan int    // 1 if not merged
	RowSpan int    // 1 if not merged
}

func (c RenderCell) String() string {
	return fmt.Sprintf("Ref: %s, Value: %q, ColSpan: %d, RowSpan: %d", c.Ref, c.Value, c.ColSpan, c.RowSpan)
}

// RenderRow represents one logical row in a sheet.
type RenderRow struct {
	HeightPx float64 // resolved height in px
	Hidden   bool
	Cells    []*RenderCell // len == column count; nil for blank or covered slots
	Covered  []bool        // true where a merge from another cell owns the slot
}

func (r RenderRow) String() string {
	return fmt.Sprintf("HeightPx: %f, Hidden: %t, Cells: %d", r.HeightPx, r.Hidden, len(r.Cells))
}

// RenderSheet is the intermediate representation of a worksheet.
type RenderSheet struct {
	Name      string
	ColWidths []float64   // per column pixel widths, len == column count
	ColHidden []bool      // true if column hidden
	Rows      []RenderRow // in order
}

func (s RenderSheet) String() string {
	return fmt.Sprintf("Name: %s, ColWidths: %v, ColHidden: %v, Rows: %d", s.Name, s.ColWidths, s.ColHidden, len(s.Rows))
}

// VisibleWidth is the pixel width of the sheet without its hidden columns.
func (s RenderSheet) VisibleWidth() float64 {
	total := 0.0
	for i, w := range s.ColWidths {
		if !s.ColHidden[i] {
			total += w
		}
	}
	return total
}

// WorkbookModel is the top-level IR containing all sheets.
type WorkbookModel struct {
	Sheets []RenderSheet
}

func (m WorkbookModel) String() string {
	return fmt.Sprintf("Sheets: %d", len(m.Sheets))
}
