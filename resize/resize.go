package resize

import (
	"errors"
	"fmt"
	"math"

	"github.com/aerissecure/tableresize"
	"github.com/aerissecure/tableresize/dom"
	"github.com/aerissecure/tableresize/tablesize"
	"github.com/aerissecure/tableresize/warehouse"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var (
	ErrNotTable         = errors.New("node is not a table")
	ErrEmptyTable       = errors.New("table has no columns")
	ErrColumnOutOfRange = errors.New("column index out of range")
	ErrInvalidStep      = errors.New("step is not a finite number")
)

// Adjuster resizes table columns. It holds no per-table state, so one
// Adjuster serves any number of tables as long as calls on the same tree are
// serialized.
type Adjuster struct {
	m      tablesize.Measurer
	logger *zap.Logger
}

// New returns an Adjuster measuring through m. A nil logger discards.
func New(m tablesize.Measurer, logger *zap.Logger) *Adjuster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adjuster{m: m, logger: logger.Named("resize")}
}

// Plan is the outcome of one resize step, in the native unit of the table.
type Plan struct {
	Request    tableresize.Request
	Size       tablesize.Size
	Neighbor   int       // column that traded width, -1 when none did
	Before     []float64 // column widths before the step
	Widths     []float64 // column widths after the step
	TableWidth float64   // table width after the step
	Delta      float64   // step in native unit, before clamping
	Applied    float64   // part of Delta that took effect
}

// Clamped reports whether a column floor cut the step short.
func (p *Plan) Clamped() bool {
	return math.Abs(p.Applied-p.Delta) > 1e-9
}

// PersistTable reports whether the table width is written back. Tables
// without a declared width keep sizing themselves.
func (p *Plan) PersistTable() bool {
	_, none := p.Size.(*tablesize.NoneSize)
	return !none
}

func (p *Plan) String() string {
	return fmt.Sprintf("Request: {%s}, Size: %s, TableWidth: %s, Widths: %v", p.Request, p.Size.Label(), p.Size.Format(p.TableWidth), p.Widths)
}

// AdjustWidth resizes column index of table by step pixels and writes the new
// widths back to the table, its <col> elements and its cells. A zero step
// writes nothing.
func (a *Adjuster) AdjustWidth(table *html.Node, step float64, index int, dir tableresize.Direction, mode tableresize.ColumnResizing) (*Plan, error) {
	req := tableresize.Request{Step: step, Column: index, Direction: dir, Mode: mode}
	w, p, err := a.plan(table, req)
	if err != nil {
		return nil, err
	}
	if req.Step == 0 {
		return p, nil
	}
	a.write(w, p)
	return p, nil
}

// Compute works out a resize step without touching the table.
func (a *Adjuster) Compute(table *html.Node, req tableresize.Request) (*Plan, error) {
	_, p, err := a.plan(table, req)
	return p, err
}

func (a *Adjuster) plan(table *html.Node, req tableresize.Request) (*warehouse.Warehouse, *Plan, error) {
	if !dom.IsElement(table, "table") {
		return nil, nil, ErrNotTable
	}
	if math.IsNaN(req.Step) || math.IsInf(req.Step, 0) {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidStep, req.Step)
	}
	if !req.Mode.Valid() {
		return nil, nil, fmt.Errorf("%w: %s", tableresize.ErrUnknownColumnResizing, req.Mode)
	}

	w := warehouse.FromTable(table)
	n := w.ColumnCount()
	if n == 0 {
		return nil, nil, ErrEmptyTable
	}
	if req.Column < 0 || req.Column >= n {
		return nil, nil, fmt.Errorf("%w: %d not in [0, %d)", ErrColumnOutOfRange, req.Column, n)
	}
	if w.Irregular() {
		a.logger.Debug("Padded irregular table", zap.Int("columns", n), zap.Int("rows", w.RowCount()))
	}

	size := tablesize.GetTableSize(table, a.m)
	before := size.Widths(w, req.Direction)
	p := &Plan{
		Request:    req,
		Size:       size,
		Neighbor:   -1,
		Before:     before,
		Widths:     append([]float64(nil), before...),
		TableWidth: size.Width(),
	}
	if req.Step == 0 {
		return w, p, nil
	}

	p.Delta = size.CellDelta(req.Step)
	minWidth := size.MinCellWidth()
	i := req.Column
	neighbor, ok := NeighborIndex(i, n, req.Direction)

	switch {
	case !ok:
		a.single(p, minWidth)
	case req.Mode == tableresize.ResizeTable:
		p.Applied = grow(p.Widths, i, p.Delta, minWidth)
		p.TableWidth = size.AdjustTableWidth(p.Applied)
		if _, percent := size.(*tablesize.PercentSize); percent {
			ratio := 1 + p.Applied/100
			for k := range p.Widths {
				p.Widths[k] /= ratio
			}
		}
	case req.Mode == tableresize.Default && i == n-1:
		p.Applied = scaleTable(size, p.Widths, p.Delta, minWidth)
		p.TableWidth = size.AdjustTableWidth(p.Applied)
	default:
		p.Neighbor = neighbor
		p.Applied = trade(p.Widths, i, neighbor, p.Delta, minWidth)
	}

	if p.Clamped() {
		a.logger.Debug("Clamped resize step at the minimum column width",
			zap.Stringer("request", req),
			zap.Float64("delta", p.Delta),
			zap.Float64("applied", p.Applied),
			zap.Float64("min_cell_width", minWidth),
		)
	}
	return w, p, nil
}

// single handles a table with one column. The lone column is also the last
// one, so the table follows it.
func (a *Adjuster) single(p *Plan, minWidth float64) {
	width := p.Widths[0]
	adj := p.Size.SingleColumnWidth(width, p.Delta)[0]
	switch s := p.Size.(type) {
	case *tablesize.PixelSize:
		p.Applied = math.Max(adj, -room(width, minWidth))
		p.Widths[0] = width + p.Applied
		p.TableWidth = s.AdjustTableWidth(p.Applied)
	case *tablesize.PercentSize:
		// The column always fills the table; only the table moves, and never
		// below one minimum cell.
		p.Widths[0] = width + adj
		p.Applied = math.Max(p.Delta, minWidth-100)
		p.TableWidth = s.AdjustTableWidth(p.Applied)
	case *tablesize.NoneSize:
		// Nothing declares a size to resize against; the column is pinned
		// at its measured width.
		p.Widths[0] = adj
		p.Delta, p.Applied = 0, 0
	}
}
