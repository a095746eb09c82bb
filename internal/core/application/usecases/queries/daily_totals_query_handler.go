package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DailyTotalsQueryHandler computes the daily report from the finalized
// orders' cost records and line items.
type DailyTotalsQueryHandler struct {
	db *gorm.DB
}

// NewDailyTotalsQueryHandler creates a handler for daily reports.
func NewDailyTotalsQueryHandler(db *gorm.DB) DailyTotalsQueryHandler {
	return DailyTotalsQueryHandler{db: db}
}

// Handle executes the daily aggregation in Go over the fetched rows.
func (h DailyTotalsQueryHandler) Handle(
	ctx context.Context,
	query DailyTotalsQuery,
) (DailyTotalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return DailyTotalsQueryResponse{}, err
	}

	start := query.Day()
	end := start.Add(24 * time.Hour)

	costRows, err := fetchCostRows(ctx, h.db, start, end)
	if err != nil {
		return DailyTotalsQueryResponse{}, err
	}

	packagingRows, err := fetchPackagingRows(ctx, h.db, start, end)
	if err != nil {
		return DailyTotalsQueryResponse{}, err
	}

	return DailyTotalsQueryResponse{
		Date:      start,
		Summary:   summarize(costRows),
		Packaging: packagingUsage(packagingRows),
	}, nil
}
