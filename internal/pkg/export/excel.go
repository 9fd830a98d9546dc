// Package export renders shaped report data into downloadable XLSX and PDF
// documents. It only consumes the projections the report tables expose;
// nothing here re-aggregates.
package export

import (
	"fmt"

	"github.com/starkedge/timelogger-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

// SummaryExcel renders the wide department summary as an XLSX workbook.
func SummaryExcel(table *report.ReportTable) ([]byte, error) {
	sheetName := table.DepartmentName
	if sheetName == "" {
		sheetName = "Summary"
	}
	return writeWorkbook(sheetName, table.HeaderLabels(), table.WideRows())
}

// EntryReportExcel renders one employee's itemized entry report as an XLSX
// workbook.
func EntryReportExcel(rep *report.EntryReport) ([]byte, error) {
	return writeWorkbook("Time Entries", rep.Headers(), rep.FlatRows())
}

// TodoReportExcel renders one employee's open todo list as an XLSX workbook.
func TodoReportExcel(rep *report.TodoReport) ([]byte, error) {
	return writeWorkbook("Todo Tasks", rep.Headers(), rep.FlatRows())
}

func writeWorkbook(sheetName string, headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Excel caps sheet names at 31 characters.
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrExportRender, err)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrExportRender, err)
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", report.ErrExportRender, err)
		}
		if err := f.SetSheetRow(sheetName, start, &cells); err != nil {
			return nil, fmt.Errorf("%w: %v", report.ErrExportRender, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrExportRender, err)
	}
	return buf.Bytes(), nil
}
