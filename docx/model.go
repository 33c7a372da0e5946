package docx

import (
	"fmt"
)

// Intermediate representation (IR) for DOCX documents.
//
// The purpose of these types is to provide a Go-native structure that captures
// just the information the table converter cares about: text, table geometry
// and merges. They mirror the level of detail found in the XLSX IR so
// development against the two formats feels familiar.

// -----------------------------------------------------------------------------
// Paragraph-level information
// -----------------------------------------------------------------------------

// RenderParagraph is the IR for a paragraph.
type RenderParagraph struct {
	Text         string // runs concatenated
	HeadingLevel int    // 0 means normal paragraph, 1-6 for headings
}

func (p RenderParagraph) String() string {
	return fmt.Sprintf("Text: %q, HeadingLevel: %d", p.Text, p.HeadingLevel)
}

// -----------------------------------------------------------------------------
// Table-level information
// -----------------------------------------------------------------------------

// WidthKind is the unit family of a Word table width.
type WidthKind int

const (
	WidthAuto    WidthKind = iota // w:type="auto" or no width
	WidthPixel                    // w:type="dxa", converted from twips
	WidthPercent                  // w:type="pct"
)

func (k WidthKind) String() string {
	switch k {
	case WidthPixel:
		return "px"
	case WidthPercent:
		return "%"
	}
	return "auto"
}

// TableWidth is the preferred width of a table.
type TableWidth struct {
	Kind  WidthKind
	Value float64 // px for WidthPixel, percent for WidthPercent
}

func (w TableWidth) String() string {
	if w.Kind == WidthAuto {
		return "auto"
	}
	return fmt.Sprintf("%g%s", w.Value, w.Kind)
}

// RenderTableCell is the IR for a single table cell. It can contain multiple
// paragraphs.
type RenderTableCell struct {
	Paragraphs []RenderParagraph // content
	ColSpan    int               // w:gridSpan, 1 if not horizontally merged
	RowSpan    int               // rows joined by w:vMerge, 1 if not vertically merged
	WidthPx    float64           // preferred width in px (0 means auto)
}

func (c RenderTableCell) String() string {
	return fmt.Sprintf("Paragraphs: %d, ColSpan: %d, RowSpan: %d, WidthPx: %f", len(c.Paragraphs), c.ColSpan, c.RowSpan, c.WidthPx)
}

// RenderTableRow represents a row within a table. Cells continuing a
// vertical merge are dropped; their master's RowSpan covers them.
type RenderTableRow struct {
	Cells []RenderTableCell
}

func (r RenderTableRow) String() string {
	return fmt.Sprintf("Cells: %d", len(r.Cells))
}

// RenderTable is the IR for a table: its width, its grid and its rows.
type RenderTable struct {
	Width TableWidth
	Grid  []float64 // w:tblGrid column widths in px
	Rows  []RenderTableRow
}

func (t RenderTable) String() string {
	return fmt.Sprintf("Width: %s, Grid: %v, Rows: %d", t.Width, t.Grid, len(t.Rows))
}

// -----------------------------------------------------------------------------
// Block ordering
// -----------------------------------------------------------------------------

// DocumentBlock represents a top-level block element in the DOCX body: either
// a paragraph or a table. Exactly one of Paragraph/Table will be non-nil.
type DocumentBlock struct {
	Paragraph *RenderParagraph
	Table     *RenderTable
}

// -----------------------------------------------------------------------------
// Top-level document model
// -----------------------------------------------------------------------------

type DocumentModel struct {
	// The document body in the order it appears. Tables holds the same
	// tables for callers that only want those.
	Blocks []DocumentBlock
	Tables []RenderTable
}

func (d DocumentModel) String() string {
	return fmt.Sprintf("Blocks: %d, Tables: %d", len(d.Blocks), len(d.Tables))
}
