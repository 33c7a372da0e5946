package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aerissecure/tableresize"
	"github.com/aerissecure/tableresize/dom"
	"github.com/aerissecure/tableresize/tablesize"
	"github.com/aerissecure/tableresize/warehouse"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFiles bounds how many documents inspect measures at once.
// Each chrome measurement starts its own browser.
const maxConcurrentFiles = 4

// tableReport is one row of inspect output.
type tableReport struct {
	File      string
	Index     int
	Label     tablesize.Label
	Width     float64
	Pixels    float64
	MinCell   float64
	Columns   int
	Irregular bool
	Widths    []float64
}

func newInspectCmd(a *app) *cobra.Command {
	var dirName string

	cmd := &cobra.Command{
		Use:   "inspect <file.html>...",
		Short: "Print the size strategy and column widths of every table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dirName == "" {
				dirName = a.cfg.Resize.Direction
			}
			dir, err := tableresize.ParseDirection(dirName)
			if err != nil {
				return err
			}

			// Files are measured concurrently; each result keeps its slot so
			// output follows argument order.
			results := make([][]tableReport, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxConcurrentFiles)
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					doc, err := readDocument(path)
					if err != nil {
						return err
					}
					m, err := a.measurer(ctx, doc)
					if err != nil {
						return fmt.Errorf("failed to measure %s: %w", path, err)
					}
					results[i] = inspectDocument(path, doc, m, dir)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			var all []tableReport
			for _, r := range results {
				all = append(all, r...)
			}
			renderReports(cmd.OutOrStdout(), all, len(args) > 1)
			return nil
		},
	}

	cmd.Flags().StringVar(&dirName, "direction", "", "reading direction used to order widths: ltr or rtl (default from config)")
	return cmd
}

// inspectDocument reports every table in doc, nested tables included.
func inspectDocument(path string, doc *html.Node, m tablesize.Measurer, dir tableresize.Direction) []tableReport {
	var out []tableReport
	for i, t := range dom.Tables(doc) {
		size := tablesize.GetTableSize(t, m)
		w := warehouse.FromTable(t)
		out = append(out, tableReport{
			File:      path,
			Index:     i,
			Label:     size.Label(),
			Width:     size.Width(),
			Pixels:    size.PixelWidth(),
			MinCell:   size.MinCellWidth(),
			Columns:   w.ColumnCount(),
			Irregular: w.Irregular(),
			Widths:    size.Widths(w, dir),
		})
	}
	return out
}

func renderReports(w io.Writer, reports []tableReport, withFile bool) {
	header := []string{"Table", "Label", "Width", "Pixels", "Min", "Columns", "Irregular", "Widths"}
	if withFile {
		header = append([]string{"File"}, header...)
	}

	table := tablewriter.NewWriter(w)
	aligns := make([]int, len(header))
	for i := range aligns {
		aligns[i] = tablewriter.ALIGN_LEFT
	}
	table.SetHeader(header)
	table.SetColumnAlignment(aligns)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, r := range reports {
		widths := make([]string, len(r.Widths))
		for i, v := range r.Widths {
			widths[i] = dom.FormatNumber(v)
		}
		row := []string{
			strconv.Itoa(r.Index),
			string(r.Label),
			dom.FormatNumber(r.Width),
			dom.Px(r.Pixels),
			dom.FormatNumber(r.MinCell),
			strconv.Itoa(r.Columns),
			strconv.FormatBool(r.Irregular),
			strings.Join(widths, " "),
		}
		if withFile {
			row = append([]string{r.File}, row...)
		}
		table.Append(row)
	}
	table.Render()
}
