package layout

import (
	"github.com/aerissecure/tableresize/dom"
	"github.com/aerissecure/tableresize/warehouse"
	"golang.org/x/net/html"
)

// Static measures a tree from its declared widths alone, the way a browser
// would lay out a document that sizes its tables explicitly. It knows nothing
// about fonts or content, so auto-sized tables and cells come out as even
// splits of their container.
//
// Results are memoized per node; call Reset after changing the tree.
type Static struct {
	viewport float64
	memo     map[*html.Node]float64
	grids    map[*html.Node]*warehouse.Warehouse
}

// NewStatic returns a Static measurer for a viewport viewportWidth pixels
// wide.
func NewStatic(viewportWidth float64) *Static {
	s := &Static{viewport: viewportWidth}
	s.Reset()
	return s
}

// Reset forgets every memoized width.
func (s *Static) Reset() {
	s.memo = make(map[*html.Node]float64)
	s.grids = make(map[*html.Node]*warehouse.Warehouse)
}

// Viewport is the width Width(nil) reports.
func (s *Static) Viewport() float64 { return s.viewport }

// Width implements tablesize.Measurer.
func (s *Static) Width(n *html.Node) float64 {
	if n == nil {
		return s.viewport
	}
	if w, ok := s.memo[n]; ok {
		return w
	}
	w := s.measure(n)
	s.memo[n] = w
	return w
}

func (s *Static) measure(n *html.Node) float64 {
	if n.Type != html.ElementNode {
		return s.Width(dom.ParentElement(n))
	}
	switch {
	case dom.IsElement(n, "table"):
		return s.table(n)
	case dom.IsElement(n, "td", "th", "col"):
		table := dom.Closest(n.Parent, "table")
		if table == nil {
			break
		}
		tw := s.Width(table)
		if w, ok := declared(n, tw); ok {
			return w
		}
		cols := s.grid(table).ColumnCount()
		if cols == 0 {
			return tw
		}
		span := 1
		if !dom.IsElement(n, "col") {
			span = dom.IntAttr(n, "colspan", 1)
			if span < 1 {
				span = 1
			}
		}
		return tw / float64(cols) * float64(span)
	}
	return s.block(n)
}

// block elements fill their container.
func (s *Static) block(n *html.Node) float64 {
	container := s.Width(dom.ParentElement(n))
	if w, ok := declared(n, container); ok {
		return w
	}
	return container
}

// table is its declared width, else the sum of its columns when every one
// of them declares a pixel width, else its container.
func (s *Static) table(n *html.Node) float64 {
	container := s.Width(dom.ParentElement(n))
	if w, ok := declared(n, container); ok {
		return w
	}
	if sum, ok := s.columnSum(n); ok {
		return sum
	}
	return container
}

func (s *Static) columnSum(table *html.Node) (float64, bool) {
	g := s.grid(table)
	if g.ColumnCount() == 0 {
		return 0, false
	}
	cols := g.Columns()
	sum := 0.0
	for c := 0; c < g.ColumnCount(); c++ {
		if c < len(cols) {
			if w, ok := absolute(cols[c]); ok {
				sum += w
				continue
			}
		}
		cell, ok := g.ColumnCell(c)
		if !ok {
			return 0, false
		}
		w, ok := absolute(cell.Element)
		if !ok {
			return 0, false
		}
		sum += w / float64(cell.ColSpan)
	}
	return sum, true
}

func (s *Static) grid(table *html.Node) *warehouse.Warehouse {
	if g, ok := s.grids[table]; ok {
		return g
	}
	g := warehouse.FromTable(table)
	s.grids[table] = g
	return g
}

// declared resolves the declared width of n against a containing block of
// container pixels.
func declared(n *html.Node, container float64) (float64, bool) {
	v, ok := dom.DeclaredWidth(n)
	if !ok {
		return 0, false
	}
	l, ok := dom.ParseLength(v)
	if !ok {
		return 0, false
	}
	if l.IsPercent() {
		return l.Value * container / 100, true
	}
	return l.Pixels()
}

func absolute(n *html.Node) (float64, bool) {
	v, ok := dom.DeclaredWidth(n)
	if !ok {
		return 0, false
	}
	l, ok := dom.ParseLength(v)
	if !ok {
		return 0, false
	}
	return l.Pixels()
}
