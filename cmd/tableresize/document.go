package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aerissecure/tableresize/dom"
	"github.com/aerissecure/tableresize/internal/config"
	"github.com/aerissecure/tableresize/layout"
	"github.com/aerissecure/tableresize/layout/chrome"
	"github.com/aerissecure/tableresize/tablesize"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

var errNoSuchTable = errors.New("no such table")

func readDocument(path string) (*html.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// writeOutput writes content to path, or to the command's stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// measurer returns the configured width source for doc.
func (a *app) measurer(ctx context.Context, doc *html.Node) (tablesize.Measurer, error) {
	l := a.cfg.Layout
	if l.Measurer != config.MeasurerChrome {
		return layout.NewStatic(float64(l.ViewportWidth)), nil
	}
	m, err := chrome.Measure(ctx, doc,
		chrome.WithHeadless(l.Chrome.Headless),
		chrome.WithExecPath(l.Chrome.ExecPath),
		chrome.WithViewport(int64(l.ViewportWidth), int64(l.ViewportHeight)),
		chrome.WithTimeout(l.Chrome.Timeout),
		chrome.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func pickTable(doc *html.Node, index int) (*html.Node, error) {
	tables := dom.Tables(doc)
	if index < 0 || index >= len(tables) {
		return nil, fmt.Errorf("table %d of %d: %w", index, len(tables), errNoSuchTable)
	}
	return tables[index], nil
}
