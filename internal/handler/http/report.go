package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/starkedge/timelogger-backend-go/internal/domain/report"
	"github.com/starkedge/timelogger-backend-go/internal/handler/http/response"
	"github.com/starkedge/timelogger-backend-go/internal/pkg/export"
	"github.com/starkedge/timelogger-backend-go/internal/pkg/validator"
)

type ReportHandler interface {
	// Department directory
	ListDepartments(w http.ResponseWriter, r *http.Request)

	// Department summary table
	GetDepartmentSummary(w http.ResponseWriter, r *http.Request)

	// Department summary download (xlsx or pdf)
	ExportDepartmentSummary(w http.ResponseWriter, r *http.Request)

	// Per-employee entry report
	GetEmployeeEntries(w http.ResponseWriter, r *http.Request)

	// Per-employee entry report download (xlsx or pdf)
	ExportEmployeeEntries(w http.ResponseWriter, r *http.Request)

	// Per-employee open todo list
	GetEmployeeTodos(w http.ResponseWriter, r *http.Request)

	// Per-employee open todo list download (xlsx or pdf)
	ExportEmployeeTodos(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ListDepartments handles GET /departments
func (h *reportHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.reportService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}

// GetDepartmentSummary handles GET /departments/{id}/summary
func (h *reportHandlerImpl) GetDepartmentSummary(w http.ResponseWriter, r *http.Request) {
	req, err := summaryRequestFromQuery(r)
	if err != nil {
		response.BadRequest(w, "invalid department id", nil)
		return
	}

	table, err := h.reportService.GenerateSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, table)
}

// ExportDepartmentSummary handles GET /departments/{id}/summary/export
func (h *reportHandlerImpl) ExportDepartmentSummary(w http.ResponseWriter, r *http.Request) {
	req, err := summaryRequestFromQuery(r)
	if err != nil {
		response.BadRequest(w, "invalid department id", nil)
		return
	}

	format, ok := exportFormat(r)
	if !ok {
		response.HandleError(w, report.ErrUnknownFormat)
		return
	}

	table, err := h.reportService.GenerateSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("%s_%s_to_%s", table.DepartmentName, table.Range.From, table.Range.To)

	switch format {
	case "xlsx":
		payload, err := export.SummaryExcel(table)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		writeAttachment(w, filename+".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
	case "pdf":
		payload, err := export.SummaryPDF(table)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		writeAttachment(w, filename+".pdf", "application/pdf", payload)
	}
}

// GetEmployeeEntries handles GET /employees/{id}/entries
func (h *reportHandlerImpl) GetEmployeeEntries(w http.ResponseWriter, r *http.Request) {
	req, err := entryRequestFromQuery(r)
	if err != nil {
		response.BadRequest(w, "invalid employee id", nil)
		return
	}

	result, err := h.reportService.GenerateEntryReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportEmployeeEntries handles GET /employees/{id}/entries/export
func (h *reportHandlerImpl) ExportEmployeeEntries(w http.ResponseWriter, r *http.Request) {
	req, err := entryRequestFromQuery(r)
	if err != nil {
		response.BadRequest(w, "invalid employee id", nil)
		return
	}

	format, ok := exportFormat(r)
	if !ok {
		response.HandleError(w, report.ErrUnknownFormat)
		return
	}

	result, err := h.reportService.GenerateEntryReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("%s_%s_to_%s", result.EmployeeName, result.From, result.To)

	switch format {
	case "xlsx":
		payload, err := export.EntryReportExcel(result)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		writeAttachment(w, filename+".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
	case "pdf":
		payload, err := export.EntryReportPDF(result)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		writeAttachment(w, filename+".pdf", "application/pdf", payload)
	}
}

// GetEmployeeTodos handles GET /employees/{id}/todos
func (h *reportHandlerImpl) GetEmployeeTodos(w http.ResponseWriter, r *http.Request) {
	req, err := todoRequestFromQuery(r)
	if err != nil {
		response.BadRequest(w, "invalid employee id", nil)
		return
	}

	result, err := h.reportService.GenerateTodoReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportEmployeeTodos handles GET /employees/{id}/todos/export
func (h *reportHandlerImpl) ExportEmployeeTodos(w http.ResponseWriter, r *http.Request) {
	req, err := todoRequestFromQuery(r)
	if err != nil {
		response.BadRequest(w, "invalid employee id", nil)
		return
	}

	format, ok := exportFormat(r)
	if !ok {
		response.HandleError(w, report.ErrUnknownFormat)
		return
	}

	result, err := h.reportService.GenerateTodoReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("todo_tasks_%d", result.EmployeeID)

	switch format {
	case "xlsx":
		payload, err := export.TodoReportExcel(result)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		writeAttachment(w, filename+".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
	case "pdf":
		payload, err := export.TodoReportPDF(result)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		writeAttachment(w, filename+".pdf", "application/pdf", payload)
	}
}

func summaryRequestFromQuery(r *http.Request) (report.SummaryRequest, error) {
	deptID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return report.SummaryRequest{}, err
	}

	q := r.URL.Query()
	return report.SummaryRequest{
		DepartmentID: deptID,
		From:         q.Get("from"),
		To:           q.Get("to"),
		Preset:       report.RangePreset(q.Get("filter")),
	}, nil
}

func entryRequestFromQuery(r *http.Request) (report.EntryReportRequest, error) {
	empID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return report.EntryReportRequest{}, err
	}

	q := r.URL.Query()
	return report.EntryReportRequest{
		EmployeeID: empID,
		From:       q.Get("from"),
		To:         q.Get("to"),
		Preset:     report.RangePreset(q.Get("filter")),
	}, nil
}

func todoRequestFromQuery(r *http.Request) (report.TodoReportRequest, error) {
	empID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return report.TodoReportRequest{}, err
	}
	return report.TodoReportRequest{EmployeeID: empID}, nil
}

// exportFormat validates the download format query parameter.
func exportFormat(r *http.Request) (string, bool) {
	format := r.URL.Query().Get("format")
	return format, validator.IsInSlice(format, []string{"xlsx", "pdf"})
}

func writeAttachment(w http.ResponseWriter, filename, contentType string, payload []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	_, _ = w.Write(payload)
}
