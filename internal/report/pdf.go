package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"ID", 60, "L"},
	{"Duration", 30, "R"},
	{"Type", 45, "L"},
	{"Host", 35, "L"},
	{"Alert", 20, "C"},
}

func writePDF(w io.Writer, report Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, report.Title)
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Configured threshold: %s", report.ConfiguredThreshold))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", report.Generated.Format(time.RFC3339)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	for _, column := range pdfColumns {
		pdf.CellFormat(column.width, 6, column.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range report.Rows {
		duration := row.Duration
		if duration == "" {
			duration = nullValue
		}

		values := []string{row.ID, duration, orNull(row.Type), orNull(row.Host), fmt.Sprintf("%t", row.Alert)}
		for i, column := range pdfColumns {
			pdf.CellFormat(column.width, 6, values[i], "1", 0, column.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	err := pdf.Output(w)
	if err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}

	return nil
}
