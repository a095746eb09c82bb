package queries

import (
	"errors"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var (
	ErrDailyTotalsQueryIsNotConstructed = errors.New(
		"DailyTotalsQuery must be created via NewDailyTotalsQuery constructor",
	)
)

// DailyTotalsQuery aggregates the orders finalized on one calendar day.
type DailyTotalsQuery struct {
	day time.Time

	guard guard.ConstructorGuard
}

// NewDailyTotalsQuery creates a daily report query. The time of day is
// ignored; the report always covers the full calendar day in the given
// location.
func NewDailyTotalsQuery(day time.Time) (DailyTotalsQuery, error) {
	if day.IsZero() {
		return DailyTotalsQuery{}, errs.NewValueIsRequiredError("day")
	}
	return DailyTotalsQuery{
		day:   startOfDay(day),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Day returns the start of the reported calendar day.
func (q DailyTotalsQuery) Day() time.Time {
	return q.day
}

// Validate ensures the query was created through the constructor.
func (q DailyTotalsQuery) Validate() error {
	return q.guard.Validate(ErrDailyTotalsQueryIsNotConstructed)
}

// DailyTotalsQueryResponse is the daily report: the summary plus the
// packaging consumed that day.
type DailyTotalsQueryResponse struct {
	Date      time.Time
	Summary   TotalsSummary
	Packaging []PackagingUsageResponse
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
