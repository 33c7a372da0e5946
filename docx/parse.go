package docx

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aerissecure/tableresize/dom"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/ofc/sharedTypes"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

const (
	twipsPerPx    = 15.0 // 1440 twips per inch, 96 px per inch
	pctFiftieths  = 50.0 // w:type="pct" bare numbers are fiftieths of a percent
	maxHeadingLvl = 6
	headingPrefix = "Heading"
)

// ParseDocumentModel reads a DOCX document from the provided reader and size
// and builds a DocumentModel intermediate representation. Only text and table
// geometry are kept.
func ParseDocumentModel(r io.ReaderAt, size int64) (DocumentModel, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		return DocumentModel{}, fmt.Errorf("failed to read document: %w", err)
	}

	var mdl DocumentModel

	// ---- Build lookup maps from underlying XML ptr -> high-level wrapper ----
	pMap := make(map[*wml.CT_P]document.Paragraph)
	for _, p := range doc.Paragraphs() {
		pMap[p.X()] = p
	}

	tMap := make(map[*wml.CT_Tbl]document.Table)
	for _, tbl := range doc.Tables() {
		tMap[tbl.X()] = tbl
	}

	// ---- Walk body elements in order ----
	body := doc.X().Body
	if body == nil {
		return mdl, nil
	}

	for _, bl := range body.EG_BlockLevelElts {
		for _, c := range bl.EG_ContentBlockContent {
			for _, cp := range c.P {
				if par, ok := pMap[cp]; ok {
					rp := convertParagraph(par)
					mdl.Blocks = append(mdl.Blocks, DocumentBlock{Paragraph: &rp})
				}
			}
			for _, ct := range c.Tbl {
				if tbl, ok := tMap[ct]; ok {
					rt := convertTable(tbl)
					mdl.Tables = append(mdl.Tables, rt)
					mdl.Blocks = append(mdl.Blocks, DocumentBlock{Table: &rt})
				}
			}
		}
	}

	return mdl, nil
}

// convertParagraph converts a unioffice Paragraph into the RenderParagraph IR.
func convertParagraph(p document.Paragraph) RenderParagraph {
	var sb strings.Builder
	for _, run := range p.Runs() {
		sb.WriteString(run.Text())
	}
	return RenderParagraph{Text: sb.String(), HeadingLevel: headingLevel(p.Style())}
}

// headingLevel maps style ids like "Heading2" to 2. Anything else is 0.
func headingLevel(style string) int {
	if !strings.HasPrefix(style, headingPrefix) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(style, headingPrefix))
	if err != nil || n < 1 {
		return 0
	}
	if n > maxHeadingLvl {
		return maxHeadingLvl
	}
	return n
}

// convertTable converts a unioffice Table into the RenderTable IR. Cells that
// continue a vertical merge are folded into the cell that started it.
func convertTable(t document.Table) RenderTable {
	x := t.X()
	rt := RenderTable{}
	if x.TblPr != nil {
		rt.Width = tableWidth(x.TblPr.TblW)
	}
	if x.TblGrid != nil {
		for _, gc := range x.TblGrid.GridCol {
			rt.Grid = append(rt.Grid, twipsMeasure(gc.WAttr)/twipsPerPx)
		}
	}

	// grid column -> [row, cell] of the open vertical merge
	open := make(map[int][2]int)

	for _, row := range t.Rows() {
		rr := RenderTableRow{}
		col := 0

		for _, cell := range row.Cells() {
			rc := RenderTableCell{ColSpan: 1, RowSpan: 1}
			restart := false

			if pr := cell.X().TcPr; pr != nil {
				if pr.GridSpan != nil && pr.GridSpan.ValAttr > 1 {
					rc.ColSpan = int(pr.GridSpan.ValAttr)
				}
				if pr.TcW != nil && pr.TcW.TypeAttr == wml.ST_TblWidthDxa {
					if w, ok := widthValue(pr.TcW.WAttr, false); ok {
						rc.WidthPx = w
					}
				}
				if pr.VMerge != nil {
					if pr.VMerge.ValAttr != wml.ST_MergeRestart {
						if ref, ok := open[col]; ok {
							rt.Rows[ref[0]].Cells[ref[1]].RowSpan++
						}
						col += rc.ColSpan
						continue
					}
					restart = true
				}
			}

			for _, p := range cell.Paragraphs() {
				rc.Paragraphs = append(rc.Paragraphs, convertParagraph(p))
			}

			if restart {
				open[col] = [2]int{len(rt.Rows), len(rr.Cells)}
			} else {
				delete(open, col)
			}
			rr.Cells = append(rr.Cells, rc)
			col += rc.ColSpan
		}

		rt.Rows = append(rt.Rows, rr)
	}

	return rt
}

// tableWidth reads w:tblW.
func tableWidth(w *wml.CT_TblWidth) TableWidth {
	if w == nil {
		return TableWidth{}
	}
	switch w.TypeAttr {
	case wml.ST_TblWidthDxa:
		if v, ok := widthValue(w.WAttr, false); ok && v > 0 {
			return TableWidth{Kind: WidthPixel, Value: v}
		}
	case wml.ST_TblWidthPct:
		if v, ok := widthValue(w.WAttr, true); ok && v > 0 {
			return TableWidth{Kind: WidthPercent, Value: v}
		}
	}
	return TableWidth{}
}

// widthValue reads a w:w attribute as px, or as a percentage when pct is
// set. Bare numbers are twips for dxa widths and fiftieths of a percent for
// pct widths.
func widthValue(m *wml.ST_MeasurementOrPercent, pct bool) (float64, bool) {
	if m == nil {
		return 0, false
	}
	if d := m.ST_DecimalNumberOrPercent; d != nil {
		if d.ST_UnqualifiedPercentage != nil {
			v := float64(*d.ST_UnqualifiedPercentage)
			if pct {
				return v / pctFiftieths, true
			}
			return v / twipsPerPx, true
		}
		if d.ST_Percentage != nil {
			l, ok := dom.ParseLength(*d.ST_Percentage)
			if !ok || !l.IsPercent() || !pct {
				return 0, false
			}
			return l.Value, true
		}
	}
	if m.ST_UniversalMeasure != nil && !pct {
		l, ok := dom.ParseLength(*m.ST_UniversalMeasure)
		if !ok {
			return 0, false
		}
		return l.Pixels()
	}
	return 0, false
}

// twipsMeasure returns a w:gridCol width in twips.
func twipsMeasure(m *sharedTypes.ST_TwipsMeasure) float64 {
	if m == nil {
		return 0
	}
	if m.ST_UnsignedDecimalNumber != nil {
		return float64(*m.ST_UnsignedDecimalNumber)
	}
	if m.ST_PositiveUniversalMeasure != nil {
		if l, ok := dom.ParseLength(*m.ST_PositiveUniversalMeasure); ok {
			if px, ok := l.Pixels(); ok {
				return px * twipsPerPx
			}
		}
	}
	return 0
}
