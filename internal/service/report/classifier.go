package report

import (
	"strings"

	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
)

// Leave detection runs on the timesheet title, case-insensitive, in priority
// order: a title containing both "full day leave" and "short leave" is a
// full-day leave.
var leavePatterns = []struct {
	substr string
	code   timeentry.LeaveCode
}{
	{"full day leave", timeentry.LeaveFullDay},
	{"half day leave", timeentry.LeaveHalfDay},
	{"short leave", timeentry.LeaveShort},
}

// Classify maps one raw entry onto its classified form. Pure: no I/O, no
// failure path; absent or malformed duration fields come through as zero
// minutes.
func Classify(entry timeentry.RawTimeEntry) timeentry.ClassifiedEntry {
	classified := timeentry.ClassifiedEntry{
		EmployeeID:    entry.EmployeeID,
		Date:          entry.Date,
		LoggedMinutes: entry.LoggedMinutes(),
		Kind:          timeentry.KindWorked,
		Raw:           entry,
	}

	if entry.Timesheet == nil || entry.Timesheet.Title == "" {
		return classified
	}

	title := strings.ToLower(entry.Timesheet.Title)
	for _, p := range leavePatterns {
		if strings.Contains(title, p.substr) {
			classified.Kind = timeentry.KindLeave
			classified.LeaveCode = p.code
			break
		}
	}

	return classified
}

// ClassifyAll classifies a batch of raw entries preserving input order.
func ClassifyAll(entries []timeentry.RawTimeEntry) []timeentry.ClassifiedEntry {
	classified := make([]timeentry.ClassifiedEntry, 0, len(entries))
	for _, e := range entries {
		classified = append(classified, Classify(e))
	}
	return classified
}
