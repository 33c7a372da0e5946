package tableresize

import (
	"errors"
	"fmt"
	"strings"
)

// Shared vocabulary for the resize engine. The concrete work happens in the
// warehouse, tablesize and resize packages; everything here is a closed
// enumeration parsed at the boundary.

var (
	ErrUnknownDirection      = errors.New("unknown resize direction")
	ErrUnknownColumnResizing = errors.New("unknown column resizing mode")
)

// -----------------------------------------------------------------------------
// Reading direction
// -----------------------------------------------------------------------------

// Direction is the reading direction of the table being resized.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	switch d {
	case LTR:
		return "ltr"
	case RTL:
		return "rtl"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts "ltr" or "rtl" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ltr":
		return LTR, nil
	case "rtl":
		return RTL, nil
	}
	return LTR, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// -----------------------------------------------------------------------------
// Column sizing mode
// -----------------------------------------------------------------------------

// ColumnResizing selects how a width change on one column propagates to the
// rest of the table.
type ColumnResizing int

const (
	// Default trades width with the next column. Resizing the last column
	// resizes the table and leaves the column shares alone.
	Default ColumnResizing = iota
	// Static trades width with the next column, or with the previous one
	// when the last column is resized. The table width never changes.
	Static
	// ResizeTable changes only the target column and grows or shrinks the
	// table by the same amount.
	ResizeTable
)

// The mode names are a public contract and must not change.
const (
	modeDefault     = "default"
	modeStatic      = "static"
	modeResizeTable = "resizetable"
	// modePreserveTable is the historical name of the neighbor-trade mode.
	modePreserveTable = "preservetable"
)

func (m ColumnResizing) String() string {
	switch m {
	case Default:
		return modeDefault
	case Static:
		return modeStatic
	case ResizeTable:
		return modeResizeTable
	}
	return fmt.Sprintf("ColumnResizing(%d)", int(m))
}

// Valid reports whether m is one of the three known modes.
func (m ColumnResizing) Valid() bool {
	return m == Default || m == Static || m == ResizeTable
}

// ParseColumnResizing maps a mode name to its ColumnResizing. Unknown names
// are rejected here so the engine never sees them.
func ParseColumnResizing(s string) (ColumnResizing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case modeDefault, "":
		return Default, nil
	case modeStatic, modePreserveTable:
		return Static, nil
	case modeResizeTable:
		return ResizeTable, nil
	}
	return Default, fmt.Errorf("%w: %q", ErrUnknownColumnResizing, s)
}

// -----------------------------------------------------------------------------
// Request
// -----------------------------------------------------------------------------

// Request describes one resize step: a pointer moved Step pixels while
// dragging the handle of column Column.
type Request struct {
	Step      float64        // signed pixel delta
	Column    int            // zero-based logical column
	Direction Direction      // reading direction
	Mode      ColumnResizing // column sizing policy
}

func (r Request) String() string {
	return fmt.Sprintf("Step: %g, Column: %d, Direction: %s, Mode: %s", r.Step, r.Column, r.Direction, r.Mode)
}
