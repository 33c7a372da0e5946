package resize

import (
	"math"

	"github.com/aerissecure/tableresize"
	"github.com/aerissecure/tableresize/tablesize"
)

// NeighborIndex returns the column that trades width with index: the next
// column in document order, or the previous one for the last column. A table
// with a single column has no neighbor.
//
// The direction does not change the answer. In an rtl table the next column
// in document order is drawn to the left, which is still the column on the
// other side of the resize handle.
func NeighborIndex(index, columns int, _ tableresize.Direction) (int, bool) {
	if columns < 2 || index < 0 || index >= columns {
		return -1, false
	}
	if index == columns-1 {
		return index - 1, true
	}
	return index + 1, true
}

// trade moves delta from column j to column i. Neither column ends up below
// minWidth; whatever would break the floor is dropped.
func trade(widths []float64, i, j int, delta, minWidth float64) float64 {
	d := clamp(delta, -room(widths[i], minWidth), room(widths[j], minWidth))
	widths[i] += d
	widths[j] -= d
	return d
}

// grow changes column i alone by delta, keeping it at or above minWidth.
func grow(widths []float64, i int, delta, minWidth float64) float64 {
	d := math.Max(delta, -room(widths[i], minWidth))
	widths[i] += d
	return d
}

// scaleTable resizes the table from its last column while every column keeps
// its share. Pixel columns scale with the table; percentages stay put. The
// step is limited so the narrowest column stays at or above minWidth.
func scaleTable(size tablesize.Size, widths []float64, delta, minWidth float64) float64 {
	base := tableBase(size)
	if base <= 0 {
		return 0
	}
	lowest := 0.0
	for _, w := range widths {
		if w > 0 {
			lowest = math.Max(lowest, minWidth/w)
		}
	}
	d := math.Max(delta, math.Min((lowest-1)*base, 0))
	if _, ok := size.(*tablesize.PercentSize); !ok {
		ratio := (base + d) / base
		for k := range widths {
			widths[k] *= ratio
		}
	}
	return d
}

// tableBase is what the column widths of size add up to: the table width in
// pixels, or 100 for percentages.
func tableBase(size tablesize.Size) float64 {
	switch s := size.(type) {
	case *tablesize.PercentSize:
		return 100
	case *tablesize.PixelSize:
		return s.Width()
	case *tablesize.NoneSize:
		return s.Width()
	}
	return 0
}

// room is how far w can shrink before reaching minWidth.
func room(w, minWidth float64) float64 {
	return math.Max(w-minWidth, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
