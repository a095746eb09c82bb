package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/ports"
)

// RefreshTrackingCommandHandler backfills tracking codes on finalized
// orders. The feed often learns the code hours after finalize, so a
// periodic sweep re-fetches the detail of finalized orders that still lack
// one. Detail fetches run outside any transaction, one short write
// transaction per matched order, with a delay between fetches.
type RefreshTrackingCommandHandler struct {
	uowFactory OrderUoWFactory
	feed       ports.OrderFeed
	fetchDelay time.Duration
	log        *slog.Logger
}

// NewRefreshTrackingCommandHandler creates a tracking refresh handler.
func NewRefreshTrackingCommandHandler(
	uowFactory OrderUoWFactory,
	feed ports.OrderFeed,
	fetchDelay time.Duration,
	log *slog.Logger,
) RefreshTrackingCommandHandler {
	return RefreshTrackingCommandHandler{
		uowFactory: uowFactory,
		feed:       feed,
		fetchDelay: fetchDelay,
		log:        log.With(slog.String("component", "refresh_tracking")),
	}
}

// Handle runs the sweep, returning how many orders received a code.
func (h *RefreshTrackingCommandHandler) Handle(ctx context.Context, cmd RefreshTrackingCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	candidates, err := h.findCandidates(ctx, cmd.Limit())
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for i, candidate := range candidates {
		if i > 0 {
			select {
			case <-ctx.Done():
				return refreshed, ctx.Err()
			case <-time.After(h.fetchDelay):
			}
		}

		detail, err := h.feed.FetchOrderDetail(ctx, candidate.ExternalRef())
		if err != nil {
			h.log.Warn("detail fetch failed",
				slog.String("order_number", candidate.OrderNumber()),
				slog.String("error", err.Error()))
			continue
		}
		if detail.TrackingCode == "" {
			continue
		}

		ok, err := h.attach(ctx, candidate.OrderNumber(), detail.TrackingCode)
		if err != nil {
			return refreshed, err
		}
		if ok {
			refreshed++
		}
	}

	return refreshed, nil
}

// findCandidates lists finalized orders without a tracking code that came
// from the feed (manual orders have nothing to re-fetch).
func (h *RefreshTrackingCommandHandler) findCandidates(ctx context.Context, limit int) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	finalized, err := uow.OrderRepository().GetAllInStatus(ctx, order.Finalized)
	if err != nil {
		return nil, err
	}

	candidates := make([]*order.Order, 0, limit)
	for _, aggregate := range finalized {
		if aggregate.TrackingCode() != "" || aggregate.ExternalRef() == "" {
			continue
		}
		candidates = append(candidates, aggregate)
		if len(candidates) == limit {
			break
		}
	}

	return candidates, nil
}

func (h *RefreshTrackingCommandHandler) attach(ctx context.Context, orderNumber, code string) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.GetForUpdate(ctx, orderNumber)
	if err != nil {
		return false, err
	}

	if !aggregate.AttachTrackingCode(code) {
		return false, nil
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return false, err
	}

	return true, uow.Commit(ctx)
}
