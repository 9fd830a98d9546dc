package timeentry

import "context"

// Employee is a member of the upstream people directory.
type Employee struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// FullName returns the display name used in report rows and alert bodies.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Department is an upstream group with its roster of assigned employee IDs.
// Roster order is preserved; report rows follow it.
type Department struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Assigned []int64 `json:"assigned"`
}

// EntrySource fetches raw time entries for one employee over an inclusive
// date range. Implementations must return self-logged entries only and treat
// malformed upstream payloads as empty.
type EntrySource interface {
	FetchTimeEntries(ctx context.Context, employeeID int64, from, to string) ([]RawTimeEntry, error)
}

// TodoSource fetches one employee's open todos. Like EntrySource, a
// malformed upstream payload decodes to an empty list.
type TodoSource interface {
	FetchTodos(ctx context.Context, employeeID int64) ([]RawTodo, error)
}

// Directory resolves employees and departments from the upstream tracker.
type Directory interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	ListDepartments(ctx context.Context) ([]Department, error)
}
