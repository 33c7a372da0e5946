package main

import (
	"fmt"

	"github.com/aerissecure/tableresize"
	"github.com/aerissecure/tableresize/dom"
	"github.com/aerissecure/tableresize/resize"
	"github.com/aerissecure/tableresize/tablesize"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Unit names accepted by --unit.
const (
	unitPixel   = "px"
	unitPercent = "%"
	unitNone    = "none"
)

func newResizeCmd(a *app) *cobra.Command {
	var (
		tableIdx int
		column   int
		step     float64
		dirName  string
		modeName string
		unit     string
		output   string
		showDiff bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "resize <file.html>",
		Short: "Apply one column resize step to a table and write the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dirName == "" {
				dirName = a.cfg.Resize.Direction
			}
			if modeName == "" {
				modeName = a.cfg.Resize.Mode
			}
			dir, err := tableresize.ParseDirection(dirName)
			if err != nil {
				return err
			}
			mode, err := tableresize.ParseColumnResizing(modeName)
			if err != nil {
				return err
			}

			path := args[0]
			doc, err := readDocument(path)
			if err != nil {
				return err
			}
			before, err := dom.RenderString(doc)
			if err != nil {
				return err
			}
			table, err := pickTable(doc, tableIdx)
			if err != nil {
				return err
			}
			m, err := a.measurer(cmd.Context(), doc)
			if err != nil {
				return fmt.Errorf("failed to measure %s: %w", path, err)
			}
			if err := enforceUnit(table, m, unit); err != nil {
				return err
			}

			adj := resize.New(m, a.logger)
			req := tableresize.Request{Step: step, Column: column, Direction: dir, Mode: mode}
			if dryRun {
				plan, err := adj.Compute(table, req)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), plan)
				return err
			}

			plan, err := adj.AdjustWidth(table, req.Step, req.Column, req.Direction, req.Mode)
			if err != nil {
				return err
			}
			a.logger.Info("Resized column",
				zap.String("file", path),
				zap.Int("table", tableIdx),
				zap.Stringer("plan", plan),
			)

			after, err := dom.RenderString(doc)
			if err != nil {
				return err
			}
			if showDiff {
				return writeOutput(cmd, output, unifiedDiff(before, after, path))
			}
			return writeOutput(cmd, output, after)
		},
	}

	f := cmd.Flags()
	f.IntVar(&tableIdx, "table", 0, "zero-based index of the table in document order")
	f.IntVar(&column, "column", 0, "zero-based index of the column whose handle is dragged")
	f.Float64Var(&step, "step", 0, "signed pointer movement in px")
	f.StringVar(&dirName, "direction", "", "reading direction: ltr or rtl (default from config)")
	f.StringVar(&modeName, "mode", "", "column resizing: default, static or resizetable (default from config)")
	f.StringVar(&unit, "unit", "", "convert the table to px, % or none before resizing")
	f.StringVarP(&output, "output", "o", "", "output file. If unset, the document is printed to stdout")
	f.BoolVar(&showDiff, "diff", false, "print a unified diff instead of the document")
	f.BoolVar(&dryRun, "dry-run", false, "print the computed plan without changing anything")
	return cmd
}

// enforceUnit converts table to the named unit family. An empty unit leaves
// it alone.
func enforceUnit(table *html.Node, m tablesize.Measurer, unit string) error {
	switch unit {
	case "":
		return nil
	case unitPixel:
		return resize.EnforcePixels(table, m)
	case unitPercent:
		return resize.EnforcePercentage(table, m)
	case unitNone:
		return resize.EnforceNone(table)
	}
	return fmt.Errorf("unknown unit %q: want px, %% or none", unit)
}

func unifiedDiff(before, after, name string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	}
	out, _ := difflib.GetUnifiedDiffString(diff)
	return out
}
