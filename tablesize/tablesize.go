package tablesize

import (
	"fmt"

	"github.com/aerissecure/tableresize"
	"github.com/aerissecure/tableresize/dom"
	"github.com/aerissecure/tableresize/warehouse"
	"golang.org/x/net/html"
)

// MinCellWidthPx is the narrowest a column may become, in pixels.
const MinCellWidthPx = 10.0

// Measurer reports rendered geometry. It is the only thing the engine needs
// from a layout engine or a browser.
type Measurer interface {
	// Width is the rendered border-box width of n in CSS pixels. Width(nil)
	// is the viewport width.
	Width(n *html.Node) float64
}

// Label names the unit system of a table.
type Label string

const (
	Pixel   Label = "pixel"
	Percent Label = "percent"
	None    Label = "none"
)

// Size is the unit system of one table, fixed at the moment it was
// classified. The three implementations are *PixelSize, *PercentSize and
// *NoneSize; the set is closed.
type Size interface {
	Label() Label
	// Width of the table in its native unit.
	Width() float64
	// PixelWidth of the table, always in pixels.
	PixelWidth() float64
	// MinCellWidth is the column floor in the native unit.
	MinCellWidth() float64
	// CellDelta converts a pointer movement in pixels to the native unit.
	CellDelta(px float64) float64
	// SingleColumnWidth is the adjustment for the only column of a
	// one-column table.
	SingleColumnWidth(width, px float64) []float64
	// Widths of every logical column in the native unit, left to right in
	// document order whatever the direction.
	Widths(w *warehouse.Warehouse, dir tableresize.Direction) []float64
	// AdjustTableWidth returns the table width after the columns grew by
	// delta (native unit).
	AdjustTableWidth(delta float64) float64
	// Format renders a native width as a CSS length.
	Format(v float64) string

	sealed()
}

// GetTableSize classifies table by its declared width: a percentage gives
// a *PercentSize, an absolute length a *PixelSize, anything else a
// *NoneSize measured through m.
func GetTableSize(table *html.Node, m Measurer) Size {
	if v, ok := dom.DeclaredWidth(table); ok {
		if l, ok := dom.ParseLength(v); ok {
			if l.IsPercent() {
				container := m.Width(dom.ParentElement(table))
				return &PercentSize{width: l.Value, pixelWidth: l.Value * container / 100, m: m}
			}
			if px, ok := l.Pixels(); ok {
				return &PixelSize{width: px, m: m}
			}
		}
	}
	return &NoneSize{width: m.Width(table), m: m}
}

// -----------------------------------------------------------------------------
// pixel
// -----------------------------------------------------------------------------

// PixelSize is a table with an absolute declared width.
type PixelSize struct {
	width float64
	m     Measurer
}

func (s *PixelSize) Label() Label                       { return Pixel }
func (s *PixelSize) Width() float64                     { return s.width }
func (s *PixelSize) PixelWidth() float64                { return s.width }
func (s *PixelSize) MinCellWidth() float64              { return MinCellWidthPx }
func (s *PixelSize) CellDelta(px float64) float64       { return px }
func (s *PixelSize) Format(v float64) string            { return dom.Px(v) }
func (s *PixelSize) AdjustTableWidth(d float64) float64 { return s.width + d }
func (s *PixelSize) sealed()                            {}

// SingleColumnWidth follows the pointer exactly.
func (s *PixelSize) SingleColumnWidth(_, px float64) []float64 {
	return []float64{px}
}

func (s *PixelSize) Widths(w *warehouse.Warehouse, _ tableresize.Direction) []float64 {
	return pixelWidths(w, s.m, s.width)
}

func (s *PixelSize) String() string {
	return fmt.Sprintf("Label: %s, Width: %g", Pixel, s.width)
}

// -----------------------------------------------------------------------------
// percent
// -----------------------------------------------------------------------------

// PercentSize is a table whose width is a percentage of its container.
// Column widths and deltas are percentages of the table itself.
type PercentSize struct {
	width      float64 // % of the container
	pixelWidth float64
	m          Measurer
}

func (s *PercentSize) Label() Label            { return Percent }
func (s *PercentSize) Width() float64          { return s.width }
func (s *PercentSize) PixelWidth() float64     { return s.pixelWidth }
func (s *PercentSize) Format(v float64) string { return dom.Percent(v) }
func (s *PercentSize) sealed()                 {}

// MinCellWidth is MinCellWidthPx expressed as a share of the table.
func (s *PercentSize) MinCellWidth() float64 {
	return s.toPercent(MinCellWidthPx)
}

func (s *PercentSize) CellDelta(px float64) float64 {
	return s.toPercent(px)
}

// SingleColumnWidth makes the only column fill the table, whatever the
// pointer did.
func (s *PercentSize) SingleColumnWidth(width, _ float64) []float64 {
	return []float64{100 - width}
}

// AdjustTableWidth scales the table: growing the columns by delta percent of
// the table grows the table by the same ratio.
func (s *PercentSize) AdjustTableWidth(delta float64) float64 {
	return s.width + delta/100*s.width
}

func (s *PercentSize) Widths(w *warehouse.Warehouse, _ tableresize.Direction) []float64 {
	out := make([]float64, w.ColumnCount())
	for c := range out {
		sm := sampleColumn(w, c, s.m)
		if sm.percent {
			out[c] = sm.value
		} else {
			out[c] = s.toPercent(sm.value)
		}
	}
	return out
}

func (s *PercentSize) toPercent(px float64) float64 {
	if s.pixelWidth <= 0 {
		return 0
	}
	return px / s.pixelWidth * 100
}

func (s *PercentSize) String() string {
	return fmt.Sprintf("Label: %s, Width: %g, PixelWidth: %g", Percent, s.width, s.pixelWidth)
}

// -----------------------------------------------------------------------------
// none
// -----------------------------------------------------------------------------

// NoneSize is a table without a usable declared width. It does pixel
// arithmetic against the measured width and never persists a table width.
type NoneSize struct {
	width float64
	m     Measurer
}

func (s *NoneSize) Label() Label                       { return None }
func (s *NoneSize) Width() float64                     { return s.width }
func (s *NoneSize) PixelWidth() float64                { return s.width }
func (s *NoneSize) MinCellWidth() float64              { return MinCellWidthPx }
func (s *NoneSize) CellDelta(px float64) float64       { return px }
func (s *NoneSize) Format(v float64) string            { return dom.Px(v) }
func (s *NoneSize) AdjustTableWidth(d float64) float64 { return s.width + d }
func (s *NoneSize) sealed()                            {}

// SingleColumnWidth keeps the column as wide as it is: a column with no
// declared sizing is not resized on its own.
func (s *NoneSize) SingleColumnWidth(width, _ float64) []float64 {
	return []float64{width}
}

func (s *NoneSize) Widths(w *warehouse.Warehouse, _ tableresize.Direction) []float64 {
	return pixelWidths(w, s.m, s.width)
}

func (s *NoneSize) String() string {
	return fmt.Sprintf("Label: %s, Width: %g", None, s.width)
}

// -----------------------------------------------------------------------------
// column sampling
// -----------------------------------------------------------------------------

type sample struct {
	value   float64
	percent bool
}

func pixelWidths(w *warehouse.Warehouse, m Measurer, tablePx float64) []float64 {
	out := make([]float64, w.ColumnCount())
	for c := range out {
		sm := sampleColumn(w, c, m)
		if sm.percent {
			out[c] = sm.value / 100 * tablePx
		} else {
			out[c] = sm.value
		}
	}
	return out
}

// sampleColumn reads the width of column c from its <col>, else from the
// cell chosen by ColumnCell (split evenly when it spans), else from layout.
// A column without any cell is zero wide.
func sampleColumn(w *warehouse.Warehouse, c int, m Measurer) sample {
	if cols := w.Columns(); c < len(cols) {
		if sm, ok := declared(cols[c]); ok {
			return sm
		}
	}
	cell, ok := w.ColumnCell(c)
	if !ok {
		return sample{}
	}
	span := float64(cell.ColSpan)
	if sm, ok := declared(cell.Element); ok {
		sm.value /= span
		return sm
	}
	return sample{value: m.Width(cell.Element) / span}
}

func declared(n *html.Node) (sample, bool) {
	v, ok := dom.DeclaredWidth(n)
	if !ok {
		return sample{}, false
	}
	l, ok := dom.ParseLength(v)
	if !ok {
		return sample{}, false
	}
	if l.IsPercent() {
		return sample{value: l.Value, percent: true}, true
	}
	if px, ok := l.Pixels(); ok {
		return sample{value: px}, true
	}
	return sample{}, false
}
