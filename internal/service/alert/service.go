package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/starkedge/timelogger-backend-go/internal/domain/alert"
	"github.com/starkedge/timelogger-backend-go/internal/domain/report"
	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
	"github.com/starkedge/timelogger-backend-go/internal/pkg/email"
	reportService "github.com/starkedge/timelogger-backend-go/internal/service/report"
)

type AlertServiceImpl struct {
	source    timeentry.EntrySource
	directory timeentry.Directory
	email     email.EmailService
	recipient string
	now       func() time.Time
}

func NewAlertService(source timeentry.EntrySource, directory timeentry.Directory, emailService email.EmailService, recipient string) alert.AlertService {
	return &AlertServiceImpl{
		source:    source,
		directory: directory,
		email:     emailService,
		recipient: recipient,
		now:       time.Now,
	}
}

// CheckDay aggregates each given employee's entries for the given date and
// flags the ones whose worked total classifies Under or Missing. Exact and
// Over never qualify. A failed fetch counts the employee as having logged
// nothing that day.
func (s *AlertServiceImpl) CheckDay(ctx context.Context, employees []timeentry.Employee, date string) ([]alert.Candidate, error) {
	var candidates []alert.Candidate
	for _, emp := range employees {
		raw, err := s.source.FetchTimeEntries(ctx, emp.ID, date, date)
		if err != nil {
			slog.Error("Failed to fetch time entries, treating as empty",
				"employee_id", emp.ID, "date", date, "error", err)
			raw = nil
		}

		entries := reportService.ClassifyAll(raw)
		total := 0
		for _, entry := range entries {
			if entry.Kind == timeentry.KindWorked {
				total += entry.LoggedMinutes
			}
		}

		switch report.StatusOf(total) {
		case report.StatusUnder, report.StatusMissing:
			candidates = append(candidates, alert.Candidate{
				Employee:     emp,
				Date:         date,
				TotalMinutes: total,
				Entries:      entries,
			})
		}
	}

	return candidates, nil
}

// RunDailyCheck evaluates today and emails an alert for each flagged
// employee. One failed delivery never blocks the rest.
func (s *AlertServiceImpl) RunDailyCheck(ctx context.Context) (alert.CheckResult, error) {
	date := s.now().Format("2006-01-02")
	result := alert.CheckResult{
		RunID: uuid.NewString(),
		Date:  date,
	}

	slog.Info("Starting daily time logging check", "run_id", result.RunID, "date", date)

	// One directory round-trip per run; CheckDay works off this list.
	employees, err := s.directory.ListEmployees(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list employees: %w", err)
	}
	result.Checked = len(employees)

	candidates, err := s.CheckDay(ctx, employees, date)
	if err != nil {
		return result, err
	}
	result.Flagged = len(candidates)

	for _, candidate := range candidates {
		if err := s.email.SendDailyAlert(s.recipient, BuildAlertData(candidate)); err != nil {
			result.SendErrors++
			slog.Error("Failed to deliver daily alert",
				"run_id", result.RunID,
				"employee_id", candidate.Employee.ID,
				"error", err)
			continue
		}
		result.Notified++
	}

	slog.Info("Daily check completed",
		"run_id", result.RunID,
		"checked", result.Checked,
		"flagged", result.Flagged,
		"notified", result.Notified,
		"send_errors", result.SendErrors)
	return result, nil
}
