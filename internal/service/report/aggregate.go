package report

import (
	"github.com/starkedge/timelogger-backend-go/internal/domain/report"
	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
)

// Aggregate folds classified entries into per-employee summaries. Every
// requested employee ID appears in the result, all-zero when it has no
// entries. Worked minutes sum per day and across the whole range, weekends
// included in the total even though they never become table columns. Leave
// minutes never join worked totals; when several leave entries land on the
// same day the last one in input order wins.
func Aggregate(employeeIDs []int64, entries []timeentry.ClassifiedEntry, rng report.ReportRange) map[int64]*report.EmployeeSummary {
	summaries := make(map[int64]*report.EmployeeSummary, len(employeeIDs))
	for _, id := range employeeIDs {
		summaries[id] = &report.EmployeeSummary{
			EmployeeID: id,
			Days:       make(map[string]report.DailyCell),
		}
	}

	for _, entry := range entries {
		summary, ok := summaries[entry.EmployeeID]
		if !ok {
			// Entry for someone outside the requested set; skip rather
			// than grow the result.
			continue
		}
		summary.HasEntries = true

		cell := summary.Days[entry.Date]
		cell.HasEntries = true

		switch entry.Kind {
		case timeentry.KindLeave:
			cell.Leave = &report.LeaveMarker{
				Code:          entry.LeaveCode,
				LoggedMinutes: entry.LoggedMinutes,
			}
		default:
			cell.WorkedMinutes += entry.LoggedMinutes
			summary.TotalWorkedMinutes += entry.LoggedMinutes
		}

		summary.Days[entry.Date] = cell
	}

	return summaries
}
