package chrome

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aerissecure/tableresize/dom"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const measureAttr = "data-tr-measure"

// Collects the rendered width of every tagged element, keyed by tag.
const measureScript = `(() => {
	const out = {};
	for (const el of document.querySelectorAll('[` + measureAttr + `]')) {
		out[el.getAttribute('` + measureAttr + `')] = el.getBoundingClientRect().width;
	}
	return out;
})()`

type options struct {
	execPath       string
	headless       bool
	viewportWidth  int64
	viewportHeight int64
	timeout        time.Duration
	logger         *zap.Logger
}

// Option configures Measure.
type Option func(*options)

// WithExecPath runs the Chrome binary at path instead of searching for one.
func WithExecPath(path string) Option { return func(o *options) { o.execPath = path } }

// WithHeadless toggles headless mode. The default is headless.
func WithHeadless(headless bool) Option { return func(o *options) { o.headless = headless } }

// WithViewport sets the window size the document is laid out in.
func WithViewport(width, height int64) Option {
	return func(o *options) { o.viewportWidth, o.viewportHeight = width, height }
}

// WithTimeout bounds the whole browser session.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithLogger sets the logger. The default discards.
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

// Measurer holds widths measured by a real browser. It satisfies
// tablesize.Measurer. Reset lays the document out again so widths follow
// edits made to the tree after Measure.
type Measurer struct {
	ctx      context.Context
	root     *html.Node
	opts     options
	logger   *zap.Logger
	viewport float64
	widths   map[*html.Node]float64
}

// Width returns the measured width of n. Nodes created after the
// measurement report the width of their closest measured ancestor.
func (m *Measurer) Width(n *html.Node) float64 {
	for ; n != nil; n = dom.ParentElement(n) {
		if w, ok := m.widths[n]; ok {
			return w
		}
	}
	return m.viewport
}

// Reset re-measures the document. On failure the previous widths are kept.
func (m *Measurer) Reset() {
	if m.root == nil {
		return
	}
	if err := m.measure(); err != nil {
		m.logger.Warn("Failed to re-measure document, keeping previous widths", zap.Error(err))
	}
}

// Measure lays out the document rooted at root in headless Chrome and
// records the border-box width of every element. root is tagged while it is
// serialized and left as it was found. ctx bounds later calls to Reset too.
func Measure(ctx context.Context, root *html.Node, opts ...Option) (*Measurer, error) {
	o := options{
		headless:       true,
		viewportWidth:  1280,
		viewportHeight: 800,
		timeout:        30 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	m := &Measurer{ctx: ctx, root: root, opts: o, logger: o.logger.Named("chrome")}
	if err := m.measure(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Measurer) measure() error {
	o := m.opts
	nodes := tag(m.root)
	doc, err := dom.RenderString(m.root)
	untag(nodes)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts,
		chromedp.Flag("headless", o.headless),
		chromedp.Flag("disable-gpu", true),
	)
	if o.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(o.execPath))
	}

	ctx := m.ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()
	taskCtx, taskCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(m.logger.Sugar().Debugf))
	defer taskCancel()

	var (
		raw      map[string]float64
		viewport float64
	)
	err = chromedp.Run(taskCtx,
		chromedp.EmulateViewport(o.viewportWidth, o.viewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to get frame tree: %w", err)
			}
			return page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx)
		}),
		chromedp.Evaluate(measureScript, &raw),
		chromedp.Evaluate(`document.documentElement.clientWidth`, &viewport),
	)
	if err != nil {
		return fmt.Errorf("failed to measure document: %w", err)
	}

	widths := make(map[*html.Node]float64, len(raw))
	for key, w := range raw {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(nodes) {
			continue
		}
		widths[nodes[i]] = w
	}
	m.viewport, m.widths = viewport, widths
	m.logger.Debug("Measured document",
		zap.Int("elements", len(nodes)),
		zap.Int("measured", len(widths)),
		zap.Float64("viewport", viewport),
	)
	return nil
}

// tag numbers every element below root in document order.
func tag(root *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			dom.SetAttr(n, measureAttr, strconv.Itoa(len(nodes)))
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return nodes
}

func untag(nodes []*html.Node) {
	for _, n := range nodes {
		dom.RemoveAttr(n, measureAttr)
	}
}
