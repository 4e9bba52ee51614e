package export

import (
	"bytes"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		Title:   "Emploi du temps L2-Info",
		Headers: []string{"Créneau", "Lundi", "Mardi"},
		Rows: [][]string{
			{"08:00-10:00", "ALGO (B200)", ""},
			{"10:00-12:00", "", "BDD (A101)"},
		},
	}
}

func TestCSVExporter(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleTable())
	require.NoError(t, err)
	assert.Equal(t, "Créneau,Lundi,Mardi\n08:00-10:00,ALGO (B200),\n10:00-12:00,,BDD (A101)\n", string(out))
}

func TestPDFExporter(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFWrapCellsKeepsTextInsideColumn(t *testing.T) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", pdfBodyFontSize)
	width := pdfContentWidth / 7

	lines, height := wrapCells(pdf, []string{
		"08:00-10:00",
		"INF101 Algorithmique et structures de donnees (Amphi B) - Marie Curie-Sklodowska",
		"",
	}, width)

	require.Len(t, lines, 3)
	assert.Len(t, lines[0], 1)
	assert.Greater(t, len(lines[1]), 2)
	for _, line := range lines[1] {
		assert.LessOrEqual(t, pdf.GetStringWidth(line), width-2*pdfCellPadding, line)
	}
	assert.Equal(t, float64(len(lines[1]))*pdfLineHeight+2*pdfCellPadding, height)

	_, short := wrapCells(pdf, []string{"ALGO", "BDD"}, width)
	assert.Equal(t, pdfMinRowHeight, short)
}

func TestPDFExporterPaginatesTallRows(t *testing.T) {
	long := "INF101 Algorithmique et structures de donnees (Amphi B) - Marie Curie-Sklodowska / MAT201 Analyse (A101) - Paul Dirac"
	table := Table{Title: "Emploi du temps L1 Info", Headers: []string{"Créneau", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}}
	for i := 0; i < 12; i++ {
		table.Rows = append(table.Rows, []string{"08:00-10:00", long, long, "", long, "", ""})
	}

	out, err := NewPDFExporter().Render(table)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, bytes.Count(out, []byte("/Type /Page\n")), 1)
}

func TestXLSXExporter(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Emploi du temps L2-Info", title)
	cell, err := f.GetCellValue(sheetName, "B4")
	require.NoError(t, err)
	assert.Equal(t, "ALGO (B200)", cell)
}

func TestRenderRejectsRaggedRows(t *testing.T) {
	table := sampleTable()
	table.Rows = append(table.Rows, []string{"only one"})
	for _, format := range []Format{FormatCSV, FormatPDF, FormatXLSX} {
		r, err := ForFormat(format)
		require.NoError(t, err)
		_, err = r.Render(table)
		assert.Error(t, err, format)
	}
	_, err := ForFormat("docx")
	assert.Error(t, err)
}
