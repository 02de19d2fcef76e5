package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/trackyourtime/tracky/pkg/timeconv"
	"github.com/trackyourtime/tracky/pkg/week"
)

type PdfRenderer struct {
}

func NewPdfRenderer() *PdfRenderer {
	return &PdfRenderer{}
}

func (p *PdfRenderer) ContentType() string {
	return "application/pdf"
}

func (p *PdfRenderer) Extension() string {
	return "pdf"
}

func (p *PdfRenderer) Render(report Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Week report %s", report.Week), true)
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, fmt.Sprintf("Week report %s", report.Week))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if report.Username != "" {
		pdf.Cell(0, 6, fmt.Sprintf("User: %s", report.Username))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Total booked: %s", timeconv.ConvertFloatTimeToHHMM(report.Total.InexactFloat64())))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Position", "1", 0, "C", false, 0, "")
	pdf.CellFormat(80, 6, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Hours", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, row := range report.Rows {
		pdf.CellFormat(25, 6, row.Date.Format(week.DateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, tr(row.Position), "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 6, tr(row.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, row.Hours.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Booked", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Worked", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, day := range report.Days {
		booked := timeconv.ConvertFloatTimeToHHMM(day.Hours.InexactFloat64())
		if day.Holiday {
			booked = "Holiday"
		}
		pdf.CellFormat(25, 6, day.Date.Format(week.DateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, booked, "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, timeconv.ConvertFloatTimeToHHMM(float64(day.WorkedMinutes)/60), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
