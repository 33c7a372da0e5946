package docx

import (
	"io"

	"github.com/aerissecure/tableresize/dom"
)

// ToHTML converts a DOCX file (from r, with given size) to an HTML document
// whose tables keep the widths Word declared for them.
func ToHTML(r io.ReaderAt, size int64) (string, error) {
	ir, err := ParseDocumentModel(r, size)
	if err != nil {
		return "", err
	}
	return dom.RenderString(RenderDocument(ir))
}
