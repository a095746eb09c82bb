package queries

import (
	"errors"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var (
	ErrChannelTotalsQueryIsNotConstructed = errors.New(
		"ChannelTotalsQuery must be created via NewChannelTotalsQuery constructor",
	)
)

// ChannelTotalsQuery aggregates the orders finalized across a date range,
// broken down per sales channel. Same range rules as the period report.
type ChannelTotalsQuery struct {
	start time.Time
	end   time.Time

	guard guard.ConstructorGuard
}

// NewChannelTotalsQuery creates a channel report query covering the full
// calendar days from start through end inclusive.
func NewChannelTotalsQuery(start, end time.Time) (ChannelTotalsQuery, error) {
	start = startOfDay(start)
	end = startOfDay(end)
	if err := validateReportPeriod(start, end); err != nil {
		return ChannelTotalsQuery{}, err
	}

	return ChannelTotalsQuery{
		start: start,
		end:   end,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Start returns the first reported day.
func (q ChannelTotalsQuery) Start() time.Time {
	return q.start
}

// End returns the last reported day (inclusive).
func (q ChannelTotalsQuery) End() time.Time {
	return q.end
}

// Validate ensures the query was created through the constructor.
func (q ChannelTotalsQuery) Validate() error {
	return q.guard.Validate(ErrChannelTotalsQueryIsNotConstructed)
}

// ChannelTotalsEntry is one channel's aggregated outcome and packaging
// usage.
type ChannelTotalsEntry struct {
	Channel   string
	Summary   TotalsSummary
	Packaging []PackagingUsageResponse
}

// ChannelTotalsQueryResponse is the channel report, channels sorted by name.
type ChannelTotalsQueryResponse struct {
	Start    time.Time
	End      time.Time
	Channels []ChannelTotalsEntry
}
