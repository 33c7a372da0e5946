package resize

import (
	"github.com/aerissecure/tableresize/dom"
	"github.com/aerissecure/tableresize/warehouse"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// resetter is implemented by measurers that cache layout.
type resetter interface {
	Reset()
}

func (a *Adjuster) write(w *warehouse.Warehouse, p *Plan) {
	if p.PersistTable() {
		setWidth(w.Table(), p.Size.Format(p.TableWidth))
	}
	writeColumns(w, p.Widths, p.Size.Format)
	reset(a.m)
	a.logger.Debug("Wrote column widths", zap.Stringer("plan", p))
}

// writeColumns declares widths on every <col> and every cell of w. A cell
// gets the sum of the columns it spans. A <col> spanning several columns
// gets their average.
func writeColumns(w *warehouse.Warehouse, widths []float64, format func(float64) string) {
	seen := make(map[*html.Node]bool)
	cols := w.Columns()
	for c := 0; c < len(cols) && c < len(widths); c++ {
		col := cols[c]
		if seen[col] {
			continue
		}
		seen[col] = true
		sum, k := 0.0, 0
		for j := c; j < len(cols) && j < len(widths) && cols[j] == col; j++ {
			sum += widths[j]
			k++
		}
		setWidth(col, format(sum/float64(k)))
	}
	for _, cell := range w.Cells() {
		sum := 0.0
		for c := cell.Column; c < cell.Column+cell.ColSpan && c < len(widths); c++ {
			sum += widths[c]
		}
		setWidth(cell.Element, format(sum))
	}
}

// setWidth declares an inline width and drops the legacy attribute so only
// one unit family remains.
func setWidth(n *html.Node, v string) {
	dom.SetStyle(n, "width", v)
	dom.RemoveAttr(n, "width")
}

func clearWidth(n *html.Node) {
	dom.RemoveStyle(n, "width")
	dom.RemoveAttr(n, "width")
}
