package alert

import (
	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
)

// Candidate is an employee flagged for under-logging on the checked day. It
// carries the day's classified entries so the message builder can itemize
// worked time without re-fetching.
type Candidate struct {
	Employee     timeentry.Employee          `json:"employee"`
	Date         string                      `json:"date"`
	TotalMinutes int                         `json:"total_minutes"`
	Entries      []timeentry.ClassifiedEntry `json:"-"`
}

// TotalHours is the day's worked total in hours, used in message bodies with
// two-decimal formatting.
func (c Candidate) TotalHours() float64 {
	return float64(c.TotalMinutes) / 60.0
}

// CheckResult summarizes one daily-check run.
type CheckResult struct {
	RunID      string `json:"run_id"`
	Date       string `json:"date"`
	Checked    int    `json:"checked"`
	Flagged    int    `json:"flagged"`
	Notified   int    `json:"notified"`
	SendErrors int    `json:"send_errors"`
}
