package report

import (
	"fmt"

	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
	"github.com/starkedge/timelogger-backend-go/internal/pkg/validator"
)

// DailyTargetMinutes is the 8-hour daily logging target every worked-time
// cell and total is classified against.
const DailyTargetMinutes = 480

// StatusClass classifies a minute total against the daily target.
type StatusClass string

const (
	StatusMissing StatusClass = "missing"
	StatusUnder   StatusClass = "under"
	StatusExact   StatusClass = "exact"
	StatusOver    StatusClass = "over"
)

// StatusOf maps a minute total onto its StatusClass. Zero (or absent)
// minutes are Missing, not Under.
func StatusOf(minutes int) StatusClass {
	switch {
	case minutes <= 0:
		return StatusMissing
	case minutes < DailyTargetMinutes:
		return StatusUnder
	case minutes == DailyTargetMinutes:
		return StatusExact
	default:
		return StatusOver
	}
}

// FormatMinutes renders minutes as "<H>h <M>m", with "0h 0m" for zero.
// Callers that need the "no data" literal use FormatMinutesOrDash.
func FormatMinutes(m int) string {
	if m <= 0 {
		return "0h 0m"
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}

// FormatMinutesOrDash renders minutes as "<H>h <M>m", or "-" when there is
// nothing to report.
func FormatMinutesOrDash(m int) string {
	if m <= 0 {
		return "-"
	}
	return FormatMinutes(m)
}

// ========================================
// RANGE
// ========================================

// RangePreset names a convenience date range anchored on "now".
type RangePreset string

const (
	PresetToday      RangePreset = "Today"
	PresetYesterday  RangePreset = "Yesterday"
	PresetThisWeek   RangePreset = "This Week"
	PresetThisMonth  RangePreset = "This Month"
	PresetLast7Days  RangePreset = "Last 7 Days"
	PresetLast30Days RangePreset = "Last 30 Days"
)

// ReportRange is an inclusive calendar span plus its derived weekday-only
// column list. Built once per request, immutable afterwards.
type ReportRange struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Weekdays []string `json:"weekdays"`
}

// ========================================
// AGGREGATION OUTPUT
// ========================================

// LeaveMarker records a leave event on a given day. LoggedMinutes is the
// leave entry's own duration and never counts toward worked totals.
type LeaveMarker struct {
	Code          timeentry.LeaveCode `json:"code"`
	LoggedMinutes int                 `json:"logged_minutes"`
}

// DailyCell is one (employee, date) aggregation slot. HasEntries separates a
// day with zero worked minutes on record from a day with no entries at all,
// so renderers can choose between "0h 0m" and "-". When a day carries both a
// leave entry and worked entries, Leave is set and WorkedMinutes still holds
// the worked sum; the cell renders the leave code while the worked minutes
// keep counting toward totals.
type DailyCell struct {
	WorkedMinutes int          `json:"worked_minutes"`
	HasEntries    bool         `json:"has_entries"`
	Leave         *LeaveMarker `json:"leave,omitempty"`
}

// EmployeeSummary is the full-range aggregation result for one employee.
type EmployeeSummary struct {
	EmployeeID         int64                `json:"employee_id"`
	TotalWorkedMinutes int                  `json:"total_worked_minutes"`
	HasEntries         bool                 `json:"has_entries"`
	Days               map[string]DailyCell `json:"days"`
}

// ========================================
// REPORT TABLE
// ========================================

// ColumnKind tags what a ReportTable column holds.
type ColumnKind string

const (
	ColumnIdentity ColumnKind = "identity"
	ColumnDate     ColumnKind = "date"
	ColumnTotal    ColumnKind = "total"
)

// Column is one ordered ReportTable column descriptor.
type Column struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Kind  ColumnKind `json:"kind"`
}

// Cell is one renderable table cell. Value is the display string (formatted
// minutes, a leave code, or "-"); Status drives cell coloring and is set for
// every worked-time and total cell, never for leave cells.
type Cell struct {
	Value   string      `json:"value"`
	Minutes int         `json:"minutes"`
	Status  StatusClass `json:"status,omitempty"`
	IsLeave bool        `json:"is_leave,omitempty"`
}

// Row is one employee's report row. Cells align with the table's date
// columns in order, followed by the total cell.
type Row struct {
	EmployeeID int64  `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Cells      []Cell `json:"cells"`
}

// ReportTable is the shaped department summary consumed read-only by every
// renderer. Footer aligns with the date columns plus the trailing total.
type ReportTable struct {
	DepartmentID   int64       `json:"department_id"`
	DepartmentName string      `json:"department_name"`
	Range          ReportRange `json:"range"`
	Columns        []Column    `json:"columns"`
	Rows           []Row       `json:"rows"`
	Footer         []Cell      `json:"footer"`
}

// HeaderLabels returns the column labels in order.
func (t *ReportTable) HeaderLabels() []string {
	labels := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		labels = append(labels, c.Label)
	}
	return labels
}

// WideRows projects the table into flat spreadsheet rows: one per employee
// plus a trailing totals row, columns matching HeaderLabels.
func (t *ReportTable) WideRows() [][]string {
	rows := make([][]string, 0, len(t.Rows)+1)
	for _, r := range t.Rows {
		row := make([]string, 0, len(t.Columns))
		row = append(row, r.Name, r.Email)
		for _, c := range r.Cells {
			row = append(row, c.Value)
		}
		rows = append(rows, row)
	}
	footer := make([]string, 0, len(t.Columns))
	footer = append(footer, "Total", "")
	for _, c := range t.Footer {
		footer = append(footer, c.Value)
	}
	rows = append(rows, footer)
	return rows
}

// TransposedRow is one row of the print layout: a date (or the totals label)
// followed by one cell per employee.
type TransposedRow struct {
	Label string `json:"label"`
	Cells []Cell `json:"cells"`
}

// TransposedLayout is the print/PDF projection: dates as rows, employees as
// columns, plus a trailing totals row. Derived from the ReportTable without
// re-aggregation.
type TransposedLayout struct {
	Headers []string        `json:"headers"`
	Rows    []TransposedRow `json:"rows"`
}

// Transposed derives the print layout from the shaped table.
func (t *ReportTable) Transposed() TransposedLayout {
	headers := make([]string, 0, len(t.Rows)+1)
	headers = append(headers, "Date")
	for _, r := range t.Rows {
		headers = append(headers, r.Name)
	}

	rows := make([]TransposedRow, 0, len(t.Range.Weekdays)+1)
	for i, date := range t.Range.Weekdays {
		tr := TransposedRow{Label: date, Cells: make([]Cell, 0, len(t.Rows))}
		for _, r := range t.Rows {
			tr.Cells = append(tr.Cells, r.Cells[i])
		}
		rows = append(rows, tr)
	}

	totals := TransposedRow{Label: "Total Logged Time", Cells: make([]Cell, 0, len(t.Rows))}
	for _, r := range t.Rows {
		totals.Cells = append(totals.Cells, r.Cells[len(r.Cells)-1])
	}
	rows = append(rows, totals)

	return TransposedLayout{Headers: headers, Rows: rows}
}

// ========================================
// REQUESTS
// ========================================

// SummaryRequest asks for one department's summary table. Either a concrete
// from/to pair or a named preset must be supplied; the preset wins when both
// are present.
type SummaryRequest struct {
	DepartmentID int64       `json:"department_id"`
	From         string      `json:"from"`
	To           string      `json:"to"`
	Preset       RangePreset `json:"preset,omitempty"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DepartmentID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id is required",
		})
	}

	errs = append(errs, validateRangeFields(r.From, r.To, r.Preset)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EntryReportRequest asks for one employee's itemized entry report.
type EntryReportRequest struct {
	EmployeeID int64       `json:"employee_id"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	Preset     RangePreset `json:"preset,omitempty"`
}

func (r *EntryReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	errs = append(errs, validateRangeFields(r.From, r.To, r.Preset)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TodoReportRequest asks for one employee's open todo list. The upstream
// todo endpoint is not range-scoped, so there are no date fields.
type TodoReportRequest struct {
	EmployeeID int64 `json:"employee_id"`
}

func (r *TodoReportRequest) Validate() error {
	if r.EmployeeID <= 0 {
		return validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}
	return nil
}

func validateRangeFields(from, to string, preset RangePreset) validator.ValidationErrors {
	if preset != "" {
		return nil
	}

	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(from); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be a date in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(to); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a date in YYYY-MM-DD format",
		})
	}
	return errs
}

// ========================================
// ENTRY REPORT
// ========================================

// EntryReportRow is one itemized entry line. String fields hold "-" when the
// underlying value is absent.
type EntryReportRow struct {
	Date        string `json:"date"`
	TaskName    string `json:"task_name"`
	SubtaskName string `json:"subtask_name"`
	ProjectName string `json:"project_name"`
	Logged      string `json:"logged"`
	Estimated   string `json:"estimated"`
	Description string `json:"description"`
}

// EntryReport is one employee's itemized report over a range, with grand
// totals for the logged and estimated columns.
type EntryReport struct {
	EmployeeID            int64            `json:"employee_id"`
	EmployeeName          string           `json:"employee_name"`
	From                  string           `json:"from"`
	To                    string           `json:"to"`
	GeneratedAt           string           `json:"generated_at"`
	Rows                  []EntryReportRow `json:"rows"`
	TotalLoggedMinutes    int              `json:"total_logged_minutes"`
	TotalEstimatedMinutes int              `json:"total_estimated_minutes"`
	TotalLogged           string           `json:"total_logged"`
	TotalEstimated        string           `json:"total_estimated"`
}

// Headers returns the entry report column labels for spreadsheet and PDF
// export.
func (r *EntryReport) Headers() []string {
	return []string{"Date", "Task Name", "Subtask Name", "Project Name", "Logged", "Estimated", "Description"}
}

// FlatRows projects the entry report into flat export rows including the
// trailing totals row.
func (r *EntryReport) FlatRows() [][]string {
	rows := make([][]string, 0, len(r.Rows)+1)
	for _, row := range r.Rows {
		rows = append(rows, []string{row.Date, row.TaskName, row.SubtaskName, row.ProjectName, row.Logged, row.Estimated, row.Description})
	}
	rows = append(rows, []string{"Total", "", "", "", FormatMinutesOrDash(r.TotalLoggedMinutes), FormatMinutesOrDash(r.TotalEstimatedMinutes), ""})
	return rows
}

// ========================================
// TODO REPORT
// ========================================

// TodoReportRow is one open todo line. String fields hold "-" when the
// underlying value is absent; Logged is "-" for a todo with no logged time.
type TodoReportRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ProjectName string `json:"project_name"`
	Logged      string `json:"logged"`
	DueDate     string `json:"due_date"`
}

// TodoReport is one employee's open todo list with the logged-time total.
// Count doubles as the per-employee todo counter shown in directory views.
type TodoReport struct {
	EmployeeID         int64           `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	Count              int             `json:"count"`
	Rows               []TodoReportRow `json:"rows"`
	TotalLoggedMinutes int             `json:"total_logged_minutes"`
	TotalLogged        string          `json:"total_logged"`
}

// Headers returns the todo export column labels. The due date stays off the
// export surfaces.
func (r *TodoReport) Headers() []string {
	return []string{"ID", "Name", "Project", "Logged"}
}

// FlatRows projects the todo report into flat export rows including the
// trailing totals row.
func (r *TodoReport) FlatRows() [][]string {
	rows := make([][]string, 0, len(r.Rows)+1)
	for _, row := range r.Rows {
		rows = append(rows, []string{row.ID, row.Title, row.ProjectName, row.Logged})
	}
	rows = append(rows, []string{"Total", "", "", FormatMinutesOrDash(r.TotalLoggedMinutes)})
	return rows
}
