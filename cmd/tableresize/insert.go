package main

import (
	"fmt"

	"github.com/aerissecure/tableresize/dom"
	"github.com/aerissecure/tableresize/resize"
	"github.com/spf13/cobra"
)

func newInsertCmd(a *app) *cobra.Command {
	var (
		rows, columns          int
		headerRows, headerCols int
		unit                   string
		width                  float64
		class                  string
	)

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Print a new empty table sized for resizing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := resize.RenderOptions{
				Styles: map[string]string{"border-collapse": "collapse"},
			}
			if class != "" {
				opts.Attributes = map[string]string{"class": class}
			}
			switch unit {
			case unitPercent:
				opts.Percentages = true
			case unitPixel:
				opts.PixelWidth = width
				if opts.PixelWidth <= 0 {
					// Fill the configured viewport.
					opts.PixelWidth = float64(a.cfg.Layout.ViewportWidth)
				}
			case unitNone:
			default:
				return fmt.Errorf("unknown unit %q: want px, %% or none", unit)
			}

			table, err := resize.Render(rows, columns, headerRows, headerCols, opts)
			if err != nil {
				return err
			}
			out, err := dom.RenderString(table)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	f := cmd.Flags()
	f.IntVar(&rows, "rows", 2, "number of rows")
	f.IntVar(&columns, "columns", 2, "number of columns")
	f.IntVar(&headerRows, "header-rows", 0, "leading rows rendered as <th> in a <thead>")
	f.IntVar(&headerCols, "header-columns", 0, "leading cells of each row rendered as <th>")
	f.StringVar(&unit, "unit", unitPercent, "column unit: px, % or none")
	f.Float64Var(&width, "width", 0, "table width in px when --unit=px (default is the viewport width)")
	f.StringVar(&class, "class", "", "class attribute for the table")
	return cmd
}
