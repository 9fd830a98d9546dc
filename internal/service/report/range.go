package report

import (
	"time"

	"github.com/starkedge/timelogger-backend-go/internal/domain/report"
)

const dateLayout = "2006-01-02"

// ExpandWeekdays lists every weekday between from and to inclusive, in
// ascending order, Saturdays and Sundays excluded. Returns ErrInvalidRange
// when from is after to. Both endpoints must already be valid YYYY-MM-DD
// dates.
func ExpandWeekdays(from, to string) ([]string, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, report.ErrInvalidRange
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, report.ErrInvalidRange
	}
	if start.After(end) {
		return nil, report.ErrInvalidRange
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, d.Format(dateLayout))
	}
	return days, nil
}

// NewRange builds the immutable ReportRange for a concrete from/to pair.
func NewRange(from, to string) (report.ReportRange, error) {
	weekdays, err := ExpandWeekdays(from, to)
	if err != nil {
		return report.ReportRange{}, err
	}
	return report.ReportRange{From: from, To: to, Weekdays: weekdays}, nil
}

// ResolvePreset turns a named preset into a concrete from/to pair anchored
// on now. "This Week" starts on Monday.
func ResolvePreset(preset report.RangePreset, now time.Time) (from, to string, err error) {
	today := now.Format(dateLayout)

	switch preset {
	case report.PresetToday:
		return today, today, nil
	case report.PresetYesterday:
		y := now.AddDate(0, 0, -1).Format(dateLayout)
		return y, y, nil
	case report.PresetThisWeek:
		offset := int(now.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset = 6 // Sunday
		}
		return now.AddDate(0, 0, -offset).Format(dateLayout), today, nil
	case report.PresetThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first.Format(dateLayout), today, nil
	case report.PresetLast7Days:
		return now.AddDate(0, 0, -7).Format(dateLayout), today, nil
	case report.PresetLast30Days:
		return now.AddDate(0, 0, -30).Format(dateLayout), today, nil
	default:
		return "", "", report.ErrUnknownPreset
	}
}

// resolveRange picks the preset when present, otherwise the explicit pair.
func resolveRange(from, to string, preset report.RangePreset, now time.Time) (report.ReportRange, error) {
	if preset != "" {
		var err error
		from, to, err = ResolvePreset(preset, now)
		if err != nil {
			return report.ReportRange{}, err
		}
	}
	return NewRange(from, to)
}
