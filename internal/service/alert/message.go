package alert

import (
	"fmt"

	"github.com/starkedge/timelogger-backend-go/internal/domain/alert"
	"github.com/starkedge/timelogger-backend-go/internal/domain/report"
	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
	"github.com/starkedge/timelogger-backend-go/internal/pkg/email"
)

// BuildAlertData shapes one candidate into the alert template payload. Only
// worked entries are itemized; leave entries stay out of the body just as
// they stay out of the day's total.
func BuildAlertData(candidate alert.Candidate) email.DailyAlertData {
	data := email.DailyAlertData{
		EmployeeFirstName: candidate.Employee.FirstName,
		EmployeeName:      candidate.Employee.FullName(),
		Date:              candidate.Date,
		TotalHours:        fmt.Sprintf("%.2f", candidate.TotalHours()),
	}

	for _, entry := range candidate.Entries {
		if entry.Kind != timeentry.KindWorked {
			continue
		}
		data.Entries = append(data.Entries, email.AlertEntryRow{
			TaskName:    orNA(rawTaskName(entry.Raw)),
			ProjectName: orNA(rawProjectName(entry.Raw)),
			Logged:      report.FormatMinutes(entry.LoggedMinutes),
			Description: orNA(entry.Raw.Description),
		})
	}

	return data
}

func rawTaskName(e timeentry.RawTimeEntry) string {
	if e.Task == nil {
		return ""
	}
	return e.Task.TaskName
}

func rawProjectName(e timeentry.RawTimeEntry) string {
	if e.Project == nil {
		return ""
	}
	return e.Project.Name
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
