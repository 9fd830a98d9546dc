package report

import (
	"context"

	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
)

// ReportService generates department summary tables and per-employee entry
// reports. All results are computed fresh from upstream data per call;
// nothing is persisted.
type ReportService interface {
	// ListDepartments returns the upstream department directory.
	ListDepartments(ctx context.Context) ([]timeentry.Department, error)

	// GenerateSummary builds the wide department summary table.
	GenerateSummary(ctx context.Context, req SummaryRequest) (*ReportTable, error)

	// GenerateEntryReport builds one employee's itemized entry report.
	GenerateEntryReport(ctx context.Context, req EntryReportRequest) (*EntryReport, error)

	// GenerateTodoReport builds one employee's open todo list.
	GenerateTodoReport(ctx context.Context, req TodoReportRequest) (*TodoReport, error)
}
