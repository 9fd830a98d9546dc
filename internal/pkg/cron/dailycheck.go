package cron

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starkedge/timelogger-backend-go/internal/domain/alert"
)

type AlertJobs struct {
	alertService alert.AlertService
	runHour      int
}

func NewAlertJobs(alertService alert.AlertService, runHour int) *AlertJobs {
	return &AlertJobs{
		alertService: alertService,
		runHour:      runHour,
	}
}

func (j *AlertJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("daily_time_check", j.runHour, j.DailyTimeCheck)
}

// DailyTimeCheck runs the under-logging check for today and emails every
// flagged employee.
func (j *AlertJobs) DailyTimeCheck(ctx context.Context) error {
	slog.Info("Cron: Starting daily time check job")

	result, err := j.alertService.RunDailyCheck(ctx)
	if err != nil {
		return fmt.Errorf("daily check failed: %w", err)
	}

	slog.Info("Cron: Daily time check finished",
		"run_id", result.RunID,
		"checked", result.Checked,
		"flagged", result.Flagged,
		"notified", result.Notified,
		"send_errors", result.SendErrors)
	return nil
}
