package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/starkedge/timelogger-backend-go/internal/domain/report"
	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
	"github.com/starkedge/timelogger-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	entries map[int64][]timeentry.RawTimeEntry
	failFor map[int64]error
}

func (f *fakeSource) FetchTimeEntries(_ context.Context, employeeID int64, _, _ string) ([]timeentry.RawTimeEntry, error) {
	if err, ok := f.failFor[employeeID]; ok {
		return nil, err
	}
	return f.entries[employeeID], nil
}

type fakeTodoSource struct {
	todos   map[int64][]timeentry.RawTodo
	failFor map[int64]error
}

func (f *fakeTodoSource) FetchTodos(_ context.Context, employeeID int64) ([]timeentry.RawTodo, error) {
	if err, ok := f.failFor[employeeID]; ok {
		return nil, err
	}
	return f.todos[employeeID], nil
}

type fakeDirectory struct {
	employees   []timeentry.Employee
	departments []timeentry.Department
	listErr     error
}

func (f *fakeDirectory) ListEmployees(_ context.Context) ([]timeentry.Employee, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.employees, nil
}

func (f *fakeDirectory) ListDepartments(_ context.Context) ([]timeentry.Department, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.departments, nil
}

func workedRaw(empID int64, date string, hours, mins int) timeentry.RawTimeEntry {
	return timeentry.RawTimeEntry{
		EmployeeID:  empID,
		Date:        date,
		LoggedHours: hours,
		LoggedMins:  mins,
		ByMe:        true,
		Timesheet:   &timeentry.TimesheetRef{Title: "Weekly timesheet"},
	}
}

func leaveRaw(empID int64, date, title string) timeentry.RawTimeEntry {
	return timeentry.RawTimeEntry{
		EmployeeID:  empID,
		Date:        date,
		LoggedHours: 8,
		ByMe:        true,
		Timesheet:   &timeentry.TimesheetRef{Title: title},
	}
}

func newTestService(source *fakeSource, directory *fakeDirectory) *ReportServiceImpl {
	return &ReportServiceImpl{
		source:    source,
		todos:     &fakeTodoSource{},
		directory: directory,
		now:       func() time.Time { return time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC) },
	}
}

func testDirectory() *fakeDirectory {
	return &fakeDirectory{
		employees: []timeentry.Employee{
			{ID: 1, FirstName: "Ava", LastName: "Stone", Email: "ava@example.com"},
			{ID: 2, FirstName: "Ben", LastName: "Reed", Email: "ben@example.com"},
			{ID: 3, FirstName: "Cara", LastName: "Wynn", Email: "cara@example.com"},
		},
		departments: []timeentry.Department{
			{ID: 10, Name: "Engineering", Assigned: []int64{1, 2, 3}},
		},
	}
}

func TestGenerateSummary_TableShape(t *testing.T) {
	t.Parallel()

	source := &fakeSource{entries: map[int64][]timeentry.RawTimeEntry{
		1: {workedRaw(1, "2024-01-01", 8, 0), workedRaw(1, "2024-01-02", 6, 30)},
		2: {leaveRaw(2, "2024-01-01", "Full Day Leave")},
	}}
	svc := newTestService(source, testDirectory())

	table, err := svc.GenerateSummary(context.Background(), report.SummaryRequest{
		DepartmentID: 10,
		From:         "2024-01-01",
		To:           "2024-01-05",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), table.DepartmentID)
	assert.Equal(t, "Engineering", table.DepartmentName)

	// Name, Email, 5 weekdays, Total Logged Time.
	require.Len(t, table.Columns, 8)
	assert.Equal(t, []string{
		"Name", "Email",
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
		"Total Logged Time",
	}, table.HeaderLabels())

	// Roster order is preserved.
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "Ava Stone", table.Rows[0].Name)
	assert.Equal(t, "ava@example.com", table.Rows[0].Email)
	assert.Equal(t, "Ben Reed", table.Rows[1].Name)
	assert.Equal(t, "Cara Wynn", table.Rows[2].Name)

	// Ava: 8h then 6h 30m, rest empty, total 14h 30m over target.
	ava := table.Rows[0]
	require.Len(t, ava.Cells, 6)
	assert.Equal(t, "8h 0m", ava.Cells[0].Value)
	assert.Equal(t, report.StatusExact, ava.Cells[0].Status)
	assert.Equal(t, "6h 30m", ava.Cells[1].Value)
	assert.Equal(t, report.StatusUnder, ava.Cells[1].Status)
	assert.Equal(t, "0h 0m", ava.Cells[2].Value)
	assert.Equal(t, report.StatusMissing, ava.Cells[2].Status)
	assert.Equal(t, "14h 30m", ava.Cells[5].Value)
	assert.Equal(t, report.StatusOver, ava.Cells[5].Status)

	// Ben: leave code in the cell, no status.
	ben := table.Rows[1]
	assert.Equal(t, "DL", ben.Cells[0].Value)
	assert.True(t, ben.Cells[0].IsLeave)
	assert.Empty(t, ben.Cells[0].Status)
}

func TestGenerateSummary_FooterSums(t *testing.T) {
	t.Parallel()

	source := &fakeSource{entries: map[int64][]timeentry.RawTimeEntry{
		1: {workedRaw(1, "2024-01-01", 8, 0)},
		2: {workedRaw(2, "2024-01-01", 4, 0)},
	}}
	svc := newTestService(source, testDirectory())

	table, err := svc.GenerateSummary(context.Background(), report.SummaryRequest{
		DepartmentID: 10,
		From:         "2024-01-01",
		To:           "2024-01-02",
	})

	require.NoError(t, err)
	require.Len(t, table.Footer, 3)
	assert.Equal(t, "12h 0m", table.Footer[0].Value)
	assert.Equal(t, "-", table.Footer[1].Value)
	assert.Equal(t, "12h 0m", table.Footer[2].Value)
	assert.Empty(t, table.Footer[0].Status)
}

func TestGenerateSummary_FetchFailureIsolatedPerEmployee(t *testing.T) {
	t.Parallel()

	source := &fakeSource{
		entries: map[int64][]timeentry.RawTimeEntry{
			1: {workedRaw(1, "2024-01-01", 8, 0)},
		},
		failFor: map[int64]error{2: errors.New("upstream timeout")},
	}
	svc := newTestService(source, testDirectory())

	table, err := svc.GenerateSummary(context.Background(), report.SummaryRequest{
		DepartmentID: 10,
		From:         "2024-01-01",
		To:           "2024-01-01",
	})

	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "8h 0m", table.Rows[0].Cells[0].Value)
	assert.Equal(t, "0h 0m", table.Rows[1].Cells[0].Value)
	assert.Equal(t, "8h 0m", table.Footer[0].Value)
}

func TestGenerateSummary_DirectoryMissingEmployeeSkipped(t *testing.T) {
	t.Parallel()

	directory := testDirectory()
	// ID 3 is rostered in the department but absent from the directory.
	directory.employees = directory.employees[:2]

	source := &fakeSource{entries: map[int64][]timeentry.RawTimeEntry{
		3: {workedRaw(3, "2024-01-01", 8, 0)},
	}}
	svc := newTestService(source, directory)

	table, err := svc.GenerateSummary(context.Background(), report.SummaryRequest{
		DepartmentID: 10,
		From:         "2024-01-01",
		To:           "2024-01-01",
	})

	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	// The skipped employee's minutes stay out of the sums too.
	assert.Equal(t, "-", table.Footer[0].Value)
	assert.Equal(t, "-", table.Footer[1].Value)
}

func TestGenerateSummary_PresetWinsOverDates(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}
	svc := newTestService(source, testDirectory())

	table, err := svc.GenerateSummary(context.Background(), report.SummaryRequest{
		DepartmentID: 10,
		From:         "2023-06-01",
		To:           "2023-06-30",
		Preset:       report.PresetToday,
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-01-17", table.Range.From)
	assert.Equal(t, "2024-01-17", table.Range.To)
}

func TestGenerateSummary_DepartmentNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeSource{}, testDirectory())

	_, err := svc.GenerateSummary(context.Background(), report.SummaryRequest{
		DepartmentID: 99,
		From:         "2024-01-01",
		To:           "2024-01-05",
	})

	assert.ErrorIs(t, err, report.ErrDepartmentNotFound)
}

func TestGenerateSummary_InvalidRange(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeSource{}, testDirectory())

	_, err := svc.GenerateSummary(context.Background(), report.SummaryRequest{
		DepartmentID: 10,
		From:         "2024-01-05",
		To:           "2024-01-01",
	})

	assert.ErrorIs(t, err, report.ErrInvalidRange)
}

func TestGenerateSummary_ValidationErrors(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeSource{}, testDirectory())

	_, err := svc.GenerateSummary(context.Background(), report.SummaryRequest{
		DepartmentID: 0,
		From:         "not-a-date",
		To:           "2024-01-05",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "department_id")
	assert.Contains(t, fields, "from")
}

func TestGenerateSummary_TransposedProjection(t *testing.T) {
	t.Parallel()

	source := &fakeSource{entries: map[int64][]timeentry.RawTimeEntry{
		1: {workedRaw(1, "2024-01-01", 8, 0)},
		2: {leaveRaw(2, "2024-01-02", "Short Leave")},
	}}
	svc := newTestService(source, testDirectory())

	table, err := svc.GenerateSummary(context.Background(), report.SummaryRequest{
		DepartmentID: 10,
		From:         "2024-01-01",
		To:           "2024-01-02",
	})
	require.NoError(t, err)

	layout := table.Transposed()

	assert.Equal(t, []string{"Date", "Ava Stone", "Ben Reed", "Cara Wynn"}, layout.Headers)
	require.Len(t, layout.Rows, 3)
	assert.Equal(t, "2024-01-01", layout.Rows[0].Label)
	assert.Equal(t, "8h 0m", layout.Rows[0].Cells[0].Value)
	assert.Equal(t, "SL", layout.Rows[1].Cells[1].Value)
	assert.Equal(t, "Total Logged Time", layout.Rows[2].Label)
	assert.Equal(t, "8h 0m", layout.Rows[2].Cells[0].Value)
	assert.Equal(t, "0h 0m", layout.Rows[2].Cells[2].Value)
}

func TestGenerateEntryReport(t *testing.T) {
	t.Parallel()

	entry := workedRaw(1, "2024-01-01", 3, 0)
	entry.Task = &timeentry.TaskRef{TaskName: "API refactor", SubtaskName: "Handlers"}
	entry.Project = &timeentry.ProjectRef{Name: "Backend"}
	entry.Description = "Moved handlers to chi"
	entry.Timesheet.EstimatedHours = 4

	bare := workedRaw(1, "2024-01-02", 2, 15)
	bare.Timesheet = nil

	source := &fakeSource{entries: map[int64][]timeentry.RawTimeEntry{1: {entry, bare}}}
	svc := newTestService(source, testDirectory())

	rep, err := svc.GenerateEntryReport(context.Background(), report.EntryReportRequest{
		EmployeeID: 1,
		From:       "2024-01-01",
		To:         "2024-01-05",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ava Stone", rep.EmployeeName)
	require.Len(t, rep.Rows, 2)

	first := rep.Rows[0]
	assert.Equal(t, "API refactor", first.TaskName)
	assert.Equal(t, "Handlers", first.SubtaskName)
	assert.Equal(t, "Backend", first.ProjectName)
	assert.Equal(t, "3h 0m", first.Logged)
	assert.Equal(t, "4h 0m", first.Estimated)

	second := rep.Rows[1]
	assert.Equal(t, "-", second.TaskName)
	assert.Equal(t, "-", second.ProjectName)
	assert.Equal(t, "2h 15m", second.Logged)
	assert.Equal(t, "-", second.Estimated)
	assert.Equal(t, "-", second.Description)

	assert.Equal(t, 315, rep.TotalLoggedMinutes)
	assert.Equal(t, "5h 15m", rep.TotalLogged)
	assert.Equal(t, "4h 0m", rep.TotalEstimated)

	flat := rep.FlatRows()
	require.Len(t, flat, 3)
	assert.Equal(t, "Total", flat[2][0])
	assert.Equal(t, "5h 15m", flat[2][4])
}

func TestGenerateEntryReport_FetchFailureYieldsEmptyReport(t *testing.T) {
	t.Parallel()

	source := &fakeSource{failFor: map[int64]error{1: errors.New("boom")}}
	svc := newTestService(source, testDirectory())

	rep, err := svc.GenerateEntryReport(context.Background(), report.EntryReportRequest{
		EmployeeID: 1,
		From:       "2024-01-01",
		To:         "2024-01-05",
	})

	require.NoError(t, err)
	assert.Empty(t, rep.Rows)
	assert.Equal(t, "-", rep.TotalLogged)
}

func TestGenerateEntryReport_EmployeeNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeSource{}, testDirectory())

	_, err := svc.GenerateEntryReport(context.Background(), report.EntryReportRequest{
		EmployeeID: 404,
		From:       "2024-01-01",
		To:         "2024-01-05",
	})

	assert.ErrorIs(t, err, report.ErrEmployeeNotFound)
}

func TestGenerateTodoReport(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeSource{}, testDirectory())
	svc.todos = &fakeTodoSource{todos: map[int64][]timeentry.RawTodo{
		1: {
			{ID: 101, Title: "Fix login redirect", LoggedHours: 2, LoggedMins: 30, DueDate: "2024-01-20", Project: &timeentry.ProjectRef{Name: "Backend"}},
			{Title: "Untracked chore"},
		},
	}}

	rep, err := svc.GenerateTodoReport(context.Background(), report.TodoReportRequest{EmployeeID: 1})

	require.NoError(t, err)
	assert.Equal(t, "Ava Stone", rep.EmployeeName)
	assert.Equal(t, 2, rep.Count)
	require.Len(t, rep.Rows, 2)

	first := rep.Rows[0]
	assert.Equal(t, "101", first.ID)
	assert.Equal(t, "Fix login redirect", first.Title)
	assert.Equal(t, "Backend", first.ProjectName)
	assert.Equal(t, "2h 30m", first.Logged)
	assert.Equal(t, "2024-01-20", first.DueDate)

	second := rep.Rows[1]
	assert.Equal(t, "-", second.ID)
	assert.Equal(t, "-", second.ProjectName)
	assert.Equal(t, "-", second.Logged)
	assert.Equal(t, "-", second.DueDate)

	assert.Equal(t, 150, rep.TotalLoggedMinutes)
	assert.Equal(t, "2h 30m", rep.TotalLogged)

	flat := rep.FlatRows()
	require.Len(t, flat, 3)
	assert.Equal(t, []string{"101", "Fix login redirect", "Backend", "2h 30m"}, flat[0])
	assert.Equal(t, []string{"Total", "", "", "2h 30m"}, flat[2])
}

func TestGenerateTodoReport_FetchFailureYieldsEmptyReport(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeSource{}, testDirectory())
	svc.todos = &fakeTodoSource{failFor: map[int64]error{1: errors.New("boom")}}

	rep, err := svc.GenerateTodoReport(context.Background(), report.TodoReportRequest{EmployeeID: 1})

	require.NoError(t, err)
	assert.Zero(t, rep.Count)
	assert.Empty(t, rep.Rows)
	assert.Equal(t, "-", rep.TotalLogged)
}

func TestGenerateTodoReport_EmployeeNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeSource{}, testDirectory())

	_, err := svc.GenerateTodoReport(context.Background(), report.TodoReportRequest{EmployeeID: 404})

	assert.ErrorIs(t, err, report.ErrEmployeeNotFound)
}

func TestGenerateTodoReport_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeSource{}, testDirectory())

	_, err := svc.GenerateTodoReport(context.Background(), report.TodoReportRequest{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "employee_id")
}

func TestListDepartments(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeSource{}, testDirectory())

	departments, err := svc.ListDepartments(context.Background())

	require.NoError(t, err)
	require.Len(t, departments, 1)
	assert.Equal(t, "Engineering", departments[0].Name)
}

func TestListDepartments_DirectoryError(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeSource{}, &fakeDirectory{listErr: errors.New("upstream down")})

	_, err := svc.ListDepartments(context.Background())

	assert.Error(t, err)
}
