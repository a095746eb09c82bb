package queries

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"
)

// PeriodTotalsQueryHandler computes the period report from the finalized
// orders' cost records and line items.
type PeriodTotalsQueryHandler struct {
	db *gorm.DB
}

// NewPeriodTotalsQueryHandler creates a handler for period reports.
func NewPeriodTotalsQueryHandler(db *gorm.DB) PeriodTotalsQueryHandler {
	return PeriodTotalsQueryHandler{db: db}
}

// Handle executes the period aggregation: one row fetch, then the overall
// summary and a per-day breakdown computed in Go.
func (h PeriodTotalsQueryHandler) Handle(
	ctx context.Context,
	query PeriodTotalsQuery,
) (PeriodTotalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return PeriodTotalsQueryResponse{}, err
	}

	start := query.Start()
	end := query.End().Add(24 * time.Hour)

	costRows, err := fetchCostRows(ctx, h.db, start, end)
	if err != nil {
		return PeriodTotalsQueryResponse{}, err
	}

	packagingRows, err := fetchPackagingRows(ctx, h.db, start, end)
	if err != nil {
		return PeriodTotalsQueryResponse{}, err
	}

	return PeriodTotalsQueryResponse{
		Start:     query.Start(),
		End:       query.End(),
		Summary:   summarize(costRows),
		Days:      dailyBreakdown(costRows),
		Packaging: packagingUsage(packagingRows),
	}, nil
}

// dailyBreakdown groups cost rows by the calendar day each order was
// finalized on, ascending. Days without orders are omitted.
func dailyBreakdown(rows []costRow) []DayTotalsResponse {
	byDay := make(map[time.Time][]costRow)
	for _, row := range rows {
		day := startOfDay(row.finalizedAt)
		byDay[day] = append(byDay[day], row)
	}

	days := make([]DayTotalsResponse, 0, len(byDay))
	for day, dayRows := range byDay {
		days = append(days, DayTotalsResponse{
			Date:    day,
			Summary: summarize(dayRows),
		})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days
}
