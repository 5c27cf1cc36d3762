package report

import (
	"time"

	"github.com/paytrack/backend/internal/domain/shared"
)

// Period selects the reporting window for paid totals
type Period string

const (
	PeriodAll   Period = "all"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod normalizes a query-string period value. An empty value
// defaults to all-time.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodAll, nil
	case PeriodAll, PeriodMonth, PeriodYear:
		return Period(s), nil
	default:
		return "", shared.NewDomainError("INVALID_PERIOD", "Period must be one of: all, month, year")
	}
}

// FilterDate returns the lower bound for the period as of now, or nil
// for all-time.
func (p Period) FilterDate(now time.Time) *time.Time {
	switch p {
	case PeriodMonth:
		d := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return &d
	case PeriodYear:
		d := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return &d
	default:
		return nil
	}
}
