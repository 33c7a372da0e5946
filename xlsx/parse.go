package xlsx

import (
	"fmt"
	"io"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

const (
	charWidthPx     = 8.3  // px per character of column width
	defaultColChars = 8.43 // Excel default column width in characters
	ptToPx          = 96.0 / 72.0
	defaultRowPt    = 15.0
)

type merge struct {
	fromRow, fromCol int
	toRow, toCol     int
}

// ParseWorkbookModel reads an XLSX from r/size and returns the intermediate representation.
func ParseWorkbookModel(r io.ReaderAt, size int64) (WorkbookModel, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return WorkbookModel{}, fmt.Errorf("failed to read workbook: %w", err)
	}

	var model WorkbookModel
	for _, sheet := range wb.Sheets() {
		model.Sheets = append(model.Sheets, parseSheet(sheet))
	}
	return model, nil
}

func parseSheet(sheet spreadsheet.Sheet) RenderSheet {
	merges := sheetMerges(sheet)

	// ---- find max column and row ----
	maxCols, maxRows := 0, 0
	for _, row := range sheet.Rows() {
		if n := int(row.RowNumber()); n > maxRows {
			maxRows = n
		}
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			if c := int(reference.ColumnToIndex(colName)) + 1; c > maxCols {
				maxCols = c
			}
		}
	}
	for _, m := range merges {
		if m.toCol+1 > maxCols {
			maxCols = m.toCol + 1
		}
		if m.toRow+1 > maxRows {
			maxRows = m.toRow + 1
		}
	}

	// ---- column metadata ----
	rs := RenderSheet{
		Name:      sheet.Name(),
		ColWidths: make([]float64, maxCols),
		ColHidden: make([]bool, maxCols),
		Rows:      make([]RenderRow, maxRows),
	}
	for c := 0; c < maxCols; c++ {
		col := sheet.Column(uint32(c + 1)).X()
		if col.WidthAttr != nil && *col.WidthAttr > 0 {
			rs.ColWidths[c] = *col.WidthAttr * charWidthPx
		} else {
			rs.ColWidths[c] = defaultColChars * charWidthPx
		}
		if col.HiddenAttr != nil {
			rs.ColHidden[c] = *col.HiddenAttr
		}
	}
	for i := range rs.Rows {
		rs.Rows[i] = RenderRow{
			HeightPx: defaultRowPt * ptToPx,
			Cells:    make([]*RenderCell, maxCols),
			Covered:  make([]bool, maxCols),
		}
	}

	// ---- merges ----
	masters := make(map[[2]int]merge)
	for _, m := range merges {
		masters[[2]int{m.fromRow, m.fromCol}] = m
		for r := m.fromRow; r <= m.toRow; r++ {
			for c := m.fromCol; c <= m.toCol; c++ {
				if r != m.fromRow || c != m.fromCol {
					rs.Rows[r].Covered[c] = true
				}
			}
		}
	}

	// ---- cells ----
	for _, row := range sheet.Rows() {
		rowIdx := int(row.RowNumber()) - 1
		if rowIdx < 0 {
			continue
		}
		rr := &rs.Rows[rowIdx]
		rr.Hidden = row.IsHidden()
		if x := row.X(); x.CustomHeightAttr != nil && *x.CustomHeightAttr && x.HtAttr != nil {
			rr.HeightPx = *x.HtAttr * ptToPx
		}

		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			colIdx := int(reference.ColumnToIndex(colName))
			if rr.Covered[colIdx] {
				continue
			}
			rc := &RenderCell{
				Ref:     fmt.Sprintf("%s%d", colName, rowIdx+1),
				Value:   cell.GetFormattedValue(),
				ColSpan: 1,
				RowSpan: 1,
			}
			if m, ok := masters[[2]int{rowIdx, colIdx}]; ok {
				rc.RowSpan = m.toRow - m.fromRow + 1
				rc.ColSpan = m.toCol - m.fromCol + 1
			}
			rr.Cells[colIdx] = rc
		}
	}

	// A merge whose master cell holds no value still spans.
	for key, m := range masters {
		if rs.Rows[key[0]].Cells[key[1]] != nil {
			continue
		}
		rs.Rows[key[0]].Cells[key[1]] = &RenderCell{
			Ref:     fmt.Sprintf("%s%d", reference.IndexToColumn(uint32(key[1])), key[0]+1),
			ColSpan: m.toCol - m.fromCol + 1,
			RowSpan: m.toRow - m.fromRow + 1,
		}
	}
	return rs
}

func sheetMerges(sheet spreadsheet.Sheet) []merge {
	x := sheet.X()
	if x.MergeCells == nil {
		return nil
	}
	var out []merge
	for _, mc := range x.MergeCells.MergeCell {
		from, to, err := reference.ParseRangeReference(mc.RefAttr)
		if err != nil {
			continue
		}
		out = append(out, merge{
			fromRow: int(from.RowIdx - 1),
			fromCol: int(from.ColumnIdx),
			toRow:   int(to.RowIdx - 1),
			toCol:   int(to.ColumnIdx),
		})
	}
	return out
}
