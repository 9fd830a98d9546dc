package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/starkedge/timelogger-backend-go/internal/domain/report"
)

// Status color map shared by every print surface: red for under-logged or
// missing time, green for exactly 8 hours, yellow for overtime.
var statusColors = map[report.StatusClass][3]int{
	report.StatusMissing: {251, 44, 54},
	report.StatusUnder:   {251, 44, 54},
	report.StatusExact:   {0, 201, 81},
	report.StatusOver:    {240, 177, 0},
}

const (
	pdfMargin    = 5.0
	pdfRowHeight = 7.0
	dateColWidth = 25.0
)

// SummaryPDF renders the department summary in its transposed print layout:
// dates as rows, employees as columns, a totals row at the bottom, and cell
// text colored by status.
func SummaryPDF(table *report.ReportTable) ([]byte, error) {
	layout := table.Transposed()

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, 10, pdfMargin)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	available := pageWidth - 2*pdfMargin

	writeSummaryHeading(pdf, table.DepartmentName, pageWidth)

	// Date column fixed, employee columns share the rest.
	colWidths := make([]float64, len(layout.Headers))
	colWidths[0] = dateColWidth
	if len(layout.Headers) > 1 {
		empWidth := (available - dateColWidth) / float64(len(layout.Headers)-1)
		for i := 1; i < len(colWidths); i++ {
			colWidths[i] = empWidth
		}
	}

	pdf.SetFont("Arial", "B", 9)
	for i, h := range layout.Headers {
		pdf.CellFormat(colWidths[i], pdfRowHeight, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for rowIdx, row := range layout.Rows {
		totalsRow := rowIdx == len(layout.Rows)-1
		pdf.CellFormat(colWidths[0], pdfRowHeight, row.Label, "1", 0, "C", false, 0, "")
		for i, cell := range row.Cells {
			if !totalsRow {
				setStatusColor(pdf, cell.Status)
			}
			pdf.CellFormat(colWidths[i+1], pdfRowHeight, cell.Value, "1", 0, "C", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(-1)
	}

	return pdfBytes(pdf)
}

// EntryReportPDF renders one employee's itemized entry report.
func EntryReportPDF(rep *report.EntryReport) ([]byte, error) {
	headers := rep.Headers()
	rows := rep.FlatRows()

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, 10, pdfMargin)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	available := pageWidth - 2*pdfMargin

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(available, 10, fmt.Sprintf("Time Entries - %s", rep.EmployeeName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(available, 6, fmt.Sprintf("%s to %s", rep.From, rep.To), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	colWidth := available / float64(len(headers))

	pdf.SetFont("Arial", "B", 9)
	for _, h := range headers {
		pdf.CellFormat(colWidth, pdfRowHeight, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		for _, v := range row {
			pdf.CellFormat(colWidth, pdfRowHeight, v, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdfBytes(pdf)
}

// TodoReportPDF renders one employee's open todo list.
func TodoReportPDF(rep *report.TodoReport) ([]byte, error) {
	headers := rep.Headers()
	rows := rep.FlatRows()

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, 10, pdfMargin)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	available := pageWidth - 2*pdfMargin

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(available, 10, fmt.Sprintf("Todo Tasks - %s", rep.EmployeeName), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	colWidth := available / float64(len(headers))

	pdf.SetFont("Arial", "B", 9)
	for _, h := range headers {
		pdf.CellFormat(colWidth, pdfRowHeight, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		for _, v := range row {
			pdf.CellFormat(colWidth, pdfRowHeight, v, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdfBytes(pdf)
}

// writeSummaryHeading draws the department name and the color legend.
func writeSummaryHeading(pdf *fpdf.Fpdf, deptName string, pageWidth float64) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(pageWidth-2*pdfMargin, 10, deptName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(pageWidth-2*pdfMargin, 6, "Time Entry Color Legend", "", 1, "C", false, 0, "")

	legendY := pdf.GetY() + 4
	startX := pageWidth/2 - 60

	legend := []struct {
		color [3]int
		label string
		dx    float64
	}{
		{statusColors[report.StatusExact], "Green: Exactly 8 hours", 0},
		{statusColors[report.StatusOver], "Yellow: More than 8 hours", 70},
		{statusColors[report.StatusUnder], "Red: Less than 8 hours", 150},
	}
	for _, item := range legend {
		pdf.SetFillColor(item.color[0], item.color[1], item.color[2])
		pdf.Circle(startX+item.dx, legendY, 2, "F")
		pdf.Text(startX+item.dx+5, legendY+1, item.label)
	}

	pdf.SetY(legendY + 8)
}

func setStatusColor(pdf *fpdf.Fpdf, status report.StatusClass) {
	if rgb, ok := statusColors[status]; ok {
		pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
		return
	}
	// Leave cells carry no status and stay black.
	pdf.SetTextColor(0, 0, 0)
}

func pdfBytes(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrExportRender, err)
	}
	return buf.Bytes(), nil
}
