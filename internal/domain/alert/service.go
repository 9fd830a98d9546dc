package alert

import (
	"context"

	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
)

// AlertService runs the daily under-logging check: aggregate each employee's
// day, flag everyone below the target, and deliver an alert per flagged
// employee. Delivery failures are isolated per candidate.
type AlertService interface {
	// CheckDay evaluates the given employees for the given date and returns
	// the flagged candidates without sending anything.
	CheckDay(ctx context.Context, employees []timeentry.Employee, date string) ([]Candidate, error)

	// RunDailyCheck evaluates today and delivers an alert for each flagged
	// employee.
	RunDailyCheck(ctx context.Context) (CheckResult, error)
}
