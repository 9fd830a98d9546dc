package report

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/starkedge/timelogger-backend-go/internal/domain/report"
	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	source    timeentry.EntrySource
	todos     timeentry.TodoSource
	directory timeentry.Directory
	now       func() time.Time
}

func NewReportService(source timeentry.EntrySource, todos timeentry.TodoSource, directory timeentry.Directory) report.ReportService {
	return &ReportServiceImpl{
		source:    source,
		todos:     todos,
		directory: directory,
		now:       time.Now,
	}
}

// ListDepartments returns the upstream department directory.
func (s *ReportServiceImpl) ListDepartments(ctx context.Context) ([]timeentry.Department, error) {
	departments, err := s.directory.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

// GenerateSummary builds the wide department summary table for the requested
// range: fetch every rostered employee's entries concurrently, classify,
// aggregate, then shape.
func (s *ReportServiceImpl) GenerateSummary(ctx context.Context, req report.SummaryRequest) (*report.ReportTable, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rng, err := resolveRange(req.From, req.To, req.Preset, s.now())
	if err != nil {
		return nil, err
	}

	dept, err := s.findDepartment(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	employees, err := s.directory.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	employeeByID := make(map[int64]timeentry.Employee, len(employees))
	for _, emp := range employees {
		employeeByID[emp.ID] = emp
	}

	entries := s.fetchAll(ctx, dept.Assigned, rng.From, rng.To)
	summaries := Aggregate(dept.Assigned, ClassifyAll(entries), rng)

	return shapeTable(dept, employeeByID, summaries, rng), nil
}

// GenerateEntryReport builds one employee's itemized report over the range.
func (s *ReportServiceImpl) GenerateEntryReport(ctx context.Context, req report.EntryReportRequest) (*report.EntryReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rng, err := resolveRange(req.From, req.To, req.Preset, s.now())
	if err != nil {
		return nil, err
	}

	emp, err := s.findEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	entries, err := s.source.FetchTimeEntries(ctx, emp.ID, rng.From, rng.To)
	if err != nil {
		slog.Error("Failed to fetch time entries, treating as empty",
			"employee_id", emp.ID, "from", rng.From, "to", rng.To, "error", err)
		entries = nil
	}

	result := &report.EntryReport{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		From:         rng.From,
		To:           rng.To,
		GeneratedAt:  s.now().Format(time.RFC3339),
		Rows:         make([]report.EntryReportRow, 0, len(entries)),
	}

	for _, entry := range entries {
		logged := entry.LoggedMinutes()
		estimated := entry.EstimatedMinutes()
		result.TotalLoggedMinutes += logged
		result.TotalEstimatedMinutes += estimated
		result.Rows = append(result.Rows, report.EntryReportRow{
			Date:        entry.Date,
			TaskName:    orDash(taskName(entry)),
			SubtaskName: orDash(subtaskName(entry)),
			ProjectName: orDash(projectName(entry)),
			Logged:      report.FormatMinutesOrDash(logged),
			Estimated:   report.FormatMinutesOrDash(estimated),
			Description: orDash(entry.Description),
		})
	}

	result.TotalLogged = report.FormatMinutesOrDash(result.TotalLoggedMinutes)
	result.TotalEstimated = report.FormatMinutesOrDash(result.TotalEstimatedMinutes)
	return result, nil
}

// GenerateTodoReport builds one employee's open todo list with per-row and
// total logged time.
func (s *ReportServiceImpl) GenerateTodoReport(ctx context.Context, req report.TodoReportRequest) (*report.TodoReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.findEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	todos, err := s.todos.FetchTodos(ctx, emp.ID)
	if err != nil {
		slog.Error("Failed to fetch todos, treating as empty",
			"employee_id", emp.ID, "error", err)
		todos = nil
	}

	result := &report.TodoReport{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		Count:        len(todos),
		Rows:         make([]report.TodoReportRow, 0, len(todos)),
	}

	for _, todo := range todos {
		logged := todo.LoggedMinutes()
		result.TotalLoggedMinutes += logged
		result.Rows = append(result.Rows, report.TodoReportRow{
			ID:          todoID(todo),
			Title:       orDash(todo.Title),
			ProjectName: orDash(todoProjectName(todo)),
			Logged:      report.FormatMinutesOrDash(logged),
			DueDate:     orDash(todo.DueDate),
		})
	}

	result.TotalLogged = report.FormatMinutesOrDash(result.TotalLoggedMinutes)
	return result, nil
}

func (s *ReportServiceImpl) findDepartment(ctx context.Context, id int64) (timeentry.Department, error) {
	departments, err := s.directory.ListDepartments(ctx)
	if err != nil {
		return timeentry.Department{}, fmt.Errorf("failed to list departments: %w", err)
	}
	for _, dept := range departments {
		if dept.ID == id {
			return dept, nil
		}
	}
	return timeentry.Department{}, report.ErrDepartmentNotFound
}

func (s *ReportServiceImpl) findEmployee(ctx context.Context, id int64) (timeentry.Employee, error) {
	employees, err := s.directory.ListEmployees(ctx)
	if err != nil {
		return timeentry.Employee{}, fmt.Errorf("failed to list employees: %w", err)
	}
	for _, emp := range employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return timeentry.Employee{}, report.ErrEmployeeNotFound
}

// fetchAll retrieves raw entries for every employee concurrently, one
// outstanding fetch per employee. A failed fetch logs and contributes an
// empty list so the rest of the department still aggregates.
func (s *ReportServiceImpl) fetchAll(ctx context.Context, employeeIDs []int64, from, to string) []timeentry.RawTimeEntry {
	results := make([][]timeentry.RawTimeEntry, len(employeeIDs))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range employeeIDs {
		i, id := i, id
		g.Go(func() error {
			entries, err := s.source.FetchTimeEntries(ctx, id, from, to)
			if err != nil {
				slog.Error("Failed to fetch time entries, treating as empty",
					"employee_id", id, "from", from, "to", to, "error", err)
				return nil
			}
			results[i] = entries
			return nil
		})
	}
	_ = g.Wait()

	var all []timeentry.RawTimeEntry
	for _, entries := range results {
		all = append(all, entries...)
	}
	return all
}

// shapeTable assembles the aggregation output into the renderable wide
// table. Rows follow roster order; employees missing from the directory are
// skipped and excluded from footer sums so displayed rows and sums always
// agree.
func shapeTable(dept timeentry.Department, employeeByID map[int64]timeentry.Employee, summaries map[int64]*report.EmployeeSummary, rng report.ReportRange) *report.ReportTable {
	columns := make([]report.Column, 0, len(rng.Weekdays)+3)
	columns = append(columns,
		report.Column{Key: "name", Label: "Name", Kind: report.ColumnIdentity},
		report.Column{Key: "email", Label: "Email", Kind: report.ColumnIdentity},
	)
	for _, date := range rng.Weekdays {
		columns = append(columns, report.Column{Key: date, Label: date, Kind: report.ColumnDate})
	}
	columns = append(columns, report.Column{Key: "total", Label: "Total Logged Time", Kind: report.ColumnTotal})

	rows := make([]report.Row, 0, len(dept.Assigned))
	dateSums := make([]int, len(rng.Weekdays))
	totalSum := 0

	for _, empID := range dept.Assigned {
		emp, ok := employeeByID[empID]
		if !ok {
			slog.Warn("Employee missing from directory, skipping row",
				"employee_id", empID, "department_id", dept.ID)
			continue
		}

		summary := summaries[empID]
		row := report.Row{
			EmployeeID: empID,
			Name:       emp.FullName(),
			Email:      emp.Email,
			Cells:      make([]report.Cell, 0, len(rng.Weekdays)+1),
		}

		for i, date := range rng.Weekdays {
			cell := summary.Days[date]
			dateSums[i] += cell.WorkedMinutes
			row.Cells = append(row.Cells, shapeCell(cell))
		}

		total := summary.TotalWorkedMinutes
		totalSum += total
		row.Cells = append(row.Cells, report.Cell{
			Value:   report.FormatMinutes(total),
			Minutes: total,
			Status:  report.StatusOf(total),
		})

		rows = append(rows, row)
	}

	footer := make([]report.Cell, 0, len(rng.Weekdays)+1)
	for _, sum := range dateSums {
		footer = append(footer, report.Cell{Value: report.FormatMinutesOrDash(sum), Minutes: sum})
	}
	footer = append(footer, report.Cell{Value: report.FormatMinutesOrDash(totalSum), Minutes: totalSum})

	return &report.ReportTable{
		DepartmentID:   dept.ID,
		DepartmentName: dept.Name,
		Range:          rng,
		Columns:        columns,
		Rows:           rows,
		Footer:         footer,
	}
}

// shapeCell renders one date cell. A leave day shows its code; everything
// else shows formatted worked minutes with the status attached. The leave
// day's worked minutes still ride along for footer sums.
func shapeCell(cell report.DailyCell) report.Cell {
	if cell.Leave != nil {
		return report.Cell{
			Value:   string(cell.Leave.Code),
			Minutes: cell.WorkedMinutes,
			IsLeave: true,
		}
	}
	return report.Cell{
		Value:   report.FormatMinutes(cell.WorkedMinutes),
		Minutes: cell.WorkedMinutes,
		Status:  report.StatusOf(cell.WorkedMinutes),
	}
}

func taskName(e timeentry.RawTimeEntry) string {
	if e.Task == nil {
		return ""
	}
	return e.Task.TaskName
}

func subtaskName(e timeentry.RawTimeEntry) string {
	if e.Task == nil {
		return ""
	}
	return e.Task.SubtaskName
}

func projectName(e timeentry.RawTimeEntry) string {
	if e.Project == nil {
		return ""
	}
	return e.Project.Name
}

func todoID(t timeentry.RawTodo) string {
	if t.ID == 0 {
		return "-"
	}
	return strconv.FormatInt(t.ID, 10)
}

func todoProjectName(t timeentry.RawTodo) string {
	if t.Project == nil {
		return ""
	}
	return t.Project.Name
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
