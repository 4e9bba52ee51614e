package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentWidth  = 277.0
	pdfBottomMargin  = 12.0
	pdfHeaderHeight  = 8.0
	pdfLineHeight    = 4.0
	pdfMinRowHeight  = 14.0
	pdfCellPadding   = 1.5
	pdfBodyFontSize  = 8.0
	pdfHeadFontSize  = 9.0
	pdfTitleFontSize = 14.0
)

// PDFExporter renders tables on a landscape A4 page.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with the title and a bordered grid. Cell text
// wraps inside its column and rows grow to the tallest cell; a row that does
// not fit moves to a new page under a repeated header. Core fonts are cp1252,
// so UTF-8 text is translated before drawing.
func (e *PDFExporter) Render(t Table) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, pdfBottomMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if t.Title != "" {
		pdf.SetFont("Arial", "B", pdfTitleFontSize)
		pdf.CellFormat(0, 10, tr(t.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	width := pdfContentWidth / float64(len(t.Headers))
	header := func() {
		pdf.SetFont("Arial", "B", pdfHeadFontSize)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range t.Headers {
			pdf.CellFormat(width, pdfHeaderHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", pdfBodyFontSize)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = tr(cell)
		}
		lines, height := wrapCells(pdf, cells, width)
		if pdf.GetY()+height > pageHeight-pdfBottomMargin {
			pdf.AddPage()
			header()
		}
		drawRow(pdf, lines, width, height)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// wrapCells splits every cell into lines no wider than its column, using the
// current font, and returns the height of the tallest cell.
func wrapCells(pdf *gofpdf.Fpdf, cells []string, width float64) ([][]string, float64) {
	lines := make([][]string, len(cells))
	tallest := 1
	for i, cell := range cells {
		for _, line := range pdf.SplitLines([]byte(cell), width-2*pdfCellPadding) {
			lines[i] = append(lines[i], string(line))
		}
		if len(lines[i]) > tallest {
			tallest = len(lines[i])
		}
	}
	height := float64(tallest)*pdfLineHeight + 2*pdfCellPadding
	if height < pdfMinRowHeight {
		height = pdfMinRowHeight
	}
	return lines, height
}

func drawRow(pdf *gofpdf.Fpdf, lines [][]string, width, height float64) {
	x, y := pdf.GetXY()
	for i, cellLines := range lines {
		left := x + float64(i)*width
		pdf.Rect(left, y, width, height, "D")
		top := y + (height-float64(len(cellLines))*pdfLineHeight)/2
		for j, line := range cellLines {
			pdf.SetXY(left, top+float64(j)*pdfLineHeight)
			pdf.CellFormat(width, pdfLineHeight, line, "", 0, "C", false, 0, "")
		}
	}
	pdf.SetXY(x, y+height)
}

func (e *PDFExporter) ContentType() string { return "application/pdf" }

func (e *PDFExporter) Extension() string { return "pdf" }
