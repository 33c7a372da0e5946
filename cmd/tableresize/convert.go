package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aerissecure/tableresize/docx"
	"github.com/aerissecure/tableresize/xlsx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newConvertCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <file.xlsx|file.docx>",
		Short: "Convert an office document into HTML with resizable tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}

			var out string
			switch ext := strings.ToLower(filepath.Ext(path)); ext {
			case ".xlsx":
				out, err = xlsx.ToHTML(f, info.Size())
			case ".docx":
				out, err = docx.ToHTML(f, info.Size())
			default:
				return fmt.Errorf("unsupported file type %q: want .xlsx or .docx", ext)
			}
			if err != nil {
				return fmt.Errorf("failed to convert %s: %w", path, err)
			}

			a.logger.Debug("Converted document", zap.String("file", path), zap.Int("bytes", len(out)))
			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file. If unset, HTML is printed to stdout")
	return cmd
}
