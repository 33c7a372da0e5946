package xlsx

import (
	"io"

	"github.com/aerissecure/tableresize/dom"
)

// Note: Google Drive preview renders to canvas and also renders to <table>, but
// it hides table and maps between it and canvas for search. We only need the
// table, sized in pixels so it can be resized column by column.

// ToHTML converts an XLSX file (from r, with given size) to an HTML document.
func ToHTML(r io.ReaderAt, size int64) (string, error) {
	m, err := ParseWorkbookModel(r, size)
	if err != nil {
		return "", err
	}
	return dom.RenderString(RenderWorkbook(m))
}
