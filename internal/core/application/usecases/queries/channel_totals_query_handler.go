package queries

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"
)

// ChannelTotalsQueryHandler computes the per-channel report from the
// finalized orders' cost records and line items.
type ChannelTotalsQueryHandler struct {
	db *gorm.DB
}

// NewChannelTotalsQueryHandler creates a handler for channel reports.
func NewChannelTotalsQueryHandler(db *gorm.DB) ChannelTotalsQueryHandler {
	return ChannelTotalsQueryHandler{db: db}
}

// Handle executes the channel aggregation in Go over the fetched rows.
func (h ChannelTotalsQueryHandler) Handle(
	ctx context.Context,
	query ChannelTotalsQuery,
) (ChannelTotalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ChannelTotalsQueryResponse{}, err
	}

	start := query.Start()
	end := query.End().Add(24 * time.Hour)

	costRows, err := fetchCostRows(ctx, h.db, start, end)
	if err != nil {
		return ChannelTotalsQueryResponse{}, err
	}

	packagingRows, err := fetchPackagingRows(ctx, h.db, start, end)
	if err != nil {
		return ChannelTotalsQueryResponse{}, err
	}

	costByChannel := make(map[string][]costRow)
	for _, row := range costRows {
		costByChannel[row.channel] = append(costByChannel[row.channel], row)
	}
	packagingByChannel := make(map[string][]packagingRow)
	for _, row := range packagingRows {
		packagingByChannel[row.channel] = append(packagingByChannel[row.channel], row)
	}

	channels := make([]ChannelTotalsEntry, 0, len(costByChannel))
	for channel, rows := range costByChannel {
		channels = append(channels, ChannelTotalsEntry{
			Channel:   channel,
			Summary:   summarize(rows),
			Packaging: packagingUsage(packagingByChannel[channel]),
		})
	}
	sort.Slice(channels, func(i, j int) bool {
		return channels[i].Channel < channels[j].Channel
	})

	return ChannelTotalsQueryResponse{
		Start:    query.Start(),
		End:      query.End(),
		Channels: channels,
	}, nil
}
