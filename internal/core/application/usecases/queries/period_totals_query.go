package queries

import (
	"errors"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var (
	ErrPeriodTotalsQueryIsNotConstructed = errors.New(
		"PeriodTotalsQuery must be created via NewPeriodTotalsQuery constructor",
	)
)

// PeriodTotalsQuery aggregates the orders finalized across a date range,
// both as one overall summary and broken down per day. The span is capped
// at 90 days.
type PeriodTotalsQuery struct {
	start time.Time
	end   time.Time

	guard guard.ConstructorGuard
}

// NewPeriodTotalsQuery creates a period report query covering the full
// calendar days from start through end inclusive.
func NewPeriodTotalsQuery(start, end time.Time) (PeriodTotalsQuery, error) {
	start = startOfDay(start)
	end = startOfDay(end)
	if err := validateReportPeriod(start, end); err != nil {
		return PeriodTotalsQuery{}, err
	}

	return PeriodTotalsQuery{
		start: start,
		end:   end,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Start returns the first reported day.
func (q PeriodTotalsQuery) Start() time.Time {
	return q.start
}

// End returns the last reported day (inclusive).
func (q PeriodTotalsQuery) End() time.Time {
	return q.end
}

// Validate ensures the query was created through the constructor.
func (q PeriodTotalsQuery) Validate() error {
	return q.guard.Validate(ErrPeriodTotalsQueryIsNotConstructed)
}

// DayTotalsResponse is one day's summary inside a period report. Days with
// no finalized orders are omitted.
type DayTotalsResponse struct {
	Date    time.Time
	Summary TotalsSummary
}

// PeriodTotalsQueryResponse is the period report: the overall summary, the
// per-day breakdown and the packaging consumed over the whole period.
type PeriodTotalsQueryResponse struct {
	Start     time.Time
	End       time.Time
	Summary   TotalsSummary
	Days      []DayTotalsResponse
	Packaging []PackagingUsageResponse
}
