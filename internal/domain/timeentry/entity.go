package timeentry

// TaskRef is opaque task metadata carried through from the upstream API.
type TaskRef struct {
	TaskName    string `json:"task_name"`
	SubtaskName string `json:"subtask_name,omitempty"`
}

// ProjectRef is opaque project metadata carried through from the upstream API.
type ProjectRef struct {
	Name string `json:"name"`
}

// TimesheetRef holds the timesheet the entry was logged against. The title is
// what leave detection runs on; the estimate fields feed entry-level reports.
type TimesheetRef struct {
	Title          string `json:"title"`
	EstimatedHours int    `json:"estimated_hours"`
	EstimatedMins  int    `json:"estimated_mins"`
}

// RawTimeEntry is one time entry as returned by the upstream tracker.
// Duration fields may be absent in the payload and default to zero.
type RawTimeEntry struct {
	EmployeeID  int64         `json:"employee_id"`
	Date        string        `json:"date"` // YYYY-MM-DD
	LoggedHours int           `json:"logged_hours"`
	LoggedMins  int           `json:"logged_mins"`
	Description string        `json:"description,omitempty"`
	ByMe        bool          `json:"by_me"`
	Task        *TaskRef      `json:"task,omitempty"`
	Project     *ProjectRef   `json:"project,omitempty"`
	Timesheet   *TimesheetRef `json:"timesheet,omitempty"`
}

// LoggedMinutes returns the entry's logged duration in minutes. Negative
// components are clamped to zero so malformed payloads never produce
// negative totals.
func (e RawTimeEntry) LoggedMinutes() int {
	h, m := e.LoggedHours, e.LoggedMins
	if h < 0 {
		h = 0
	}
	if m < 0 {
		m = 0
	}
	return h*60 + m
}

// EstimatedMinutes returns the timesheet estimate in minutes, zero when the
// entry carries no timesheet.
func (e RawTimeEntry) EstimatedMinutes() int {
	if e.Timesheet == nil {
		return 0
	}
	h, m := e.Timesheet.EstimatedHours, e.Timesheet.EstimatedMins
	if h < 0 {
		h = 0
	}
	if m < 0 {
		m = 0
	}
	return h*60 + m
}

// RawTodo is one open task as returned by the upstream tracker's todo
// endpoint. Duration fields may be absent and default to zero.
type RawTodo struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	LoggedHours int         `json:"logged_hours"`
	LoggedMins  int         `json:"logged_mins"`
	DueDate     string      `json:"due_date,omitempty"`
	Project     *ProjectRef `json:"project,omitempty"`
}

// LoggedMinutes returns the todo's logged duration in minutes with the same
// negative clamping as time entries.
func (t RawTodo) LoggedMinutes() int {
	h, m := t.LoggedHours, t.LoggedMins
	if h < 0 {
		h = 0
	}
	if m < 0 {
		m = 0
	}
	return h*60 + m
}

// EntryKind distinguishes ordinary worked time from leave events.
type EntryKind string

const (
	KindWorked EntryKind = "worked"
	KindLeave  EntryKind = "leave"
)

// LeaveCode identifies the leave variant detected from the timesheet title.
type LeaveCode string

const (
	LeaveFullDay LeaveCode = "DL"
	LeaveHalfDay LeaveCode = "HL"
	LeaveShort   LeaveCode = "SL"
)

// ClassifiedEntry is a RawTimeEntry after classification. Every raw entry
// maps to exactly one ClassifiedEntry; LeaveCode is set only for KindLeave.
type ClassifiedEntry struct {
	EmployeeID    int64
	Date          string
	LoggedMinutes int
	Kind          EntryKind
	LeaveCode     LeaveCode

	// Carried through for entry-level reporting and alert bodies.
	Raw RawTimeEntry
}
