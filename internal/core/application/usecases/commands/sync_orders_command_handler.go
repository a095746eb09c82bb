package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/ports"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// LastSyncKindOrders is the sync-state key of the order feed sync.
const LastSyncKindOrders = "orders"

// SyncResult summarizes one sync run.
type SyncResult struct {
	Skipped bool
	Pages   int
	Created int
	Updated int
	Pruned  int
}

// SyncOrdersCommandHandler pulls open orders from the upstream feed page by
// page. Each page commits in its own transaction, so a crash or
// cancellation mid-run keeps every fully processed page; a mandatory delay
// separates page fetches to respect the provider's rate limits. After the
// last page, local open orders that vanished upstream are pruned and the
// last-sync timestamp is written.
//
// Feed calls always run outside the page transaction: existing rows are
// identified first, details for new orders are fetched, and only then does
// the write transaction open.
type SyncOrdersCommandHandler struct {
	uowFactory SyncUoWFactory
	feed       ports.OrderFeed
	policies   *costing.ChannelPolicies
	throttle   time.Duration
	pageDelay  time.Duration
	log        *slog.Logger
}

// NewSyncOrdersCommandHandler creates a sync handler. throttle is the
// minimum interval between non-forced runs; pageDelay is the pause between
// page fetches.
func NewSyncOrdersCommandHandler(
	uowFactory SyncUoWFactory,
	feed ports.OrderFeed,
	policies *costing.ChannelPolicies,
	throttle time.Duration,
	pageDelay time.Duration,
	log *slog.Logger,
) SyncOrdersCommandHandler {
	return SyncOrdersCommandHandler{
		uowFactory: uowFactory,
		feed:       feed,
		policies:   policies,
		throttle:   throttle,
		pageDelay:  pageDelay,
		log:        log.With(slog.String("component", "sync_orders")),
	}
}

// Handle runs the sync. Context cancellation stops the run between pages
// without corrupting committed ones.
func (h *SyncOrdersCommandHandler) Handle(ctx context.Context, cmd SyncOrdersCommand) (SyncResult, error) {
	if err := cmd.Validate(); err != nil {
		return SyncResult{}, err
	}

	should, err := h.shouldSync(ctx, cmd.Force())
	if err != nil {
		return SyncResult{}, err
	}
	if !should {
		h.log.Info("sync skipped, last run is within the throttle window")
		return SyncResult{Skipped: true}, nil
	}

	result := SyncResult{}
	seen := make(map[string]struct{})

	for page := 1; ; page++ {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		summaries, hasMore, err := h.feed.FetchOpenOrders(ctx, page)
		if err != nil {
			return result, errs.NewExternalProviderError("order feed", err)
		}

		created, updated, err := h.applyPage(ctx, summaries, seen)
		if err != nil {
			return result, err
		}

		result.Pages++
		result.Created += created
		result.Updated += updated

		if !hasMore {
			break
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(h.pageDelay):
		}
	}

	pruned, err := h.finish(ctx, seen)
	if err != nil {
		return result, err
	}
	result.Pruned = pruned

	h.log.Info("sync finished",
		slog.Int("pages", result.Pages),
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("pruned", result.Pruned))
	return result, nil
}

// shouldSync reads the last-sync timestamp and applies the throttle.
func (h *SyncOrdersCommandHandler) shouldSync(ctx context.Context, force bool) (bool, error) {
	if force {
		return true, nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	last, err := uow.SyncStateRepository().GetLastSync(ctx, LastSyncKindOrders)
	_ = uow.Rollback(ctx)
	if err != nil {
		return false, err
	}

	return last == nil || time.Since(*last) >= h.throttle, nil
}

// applyPage upserts one page of feed summaries in a single transaction.
func (h *SyncOrdersCommandHandler) applyPage(
	ctx context.Context,
	summaries []ports.OpenOrderSummary,
	seen map[string]struct{},
) (created, updated int, err error) {
	if len(summaries) == 0 {
		return 0, 0, nil
	}

	existing, err := h.findExisting(ctx, summaries)
	if err != nil {
		return 0, 0, err
	}

	// detail fetches for new orders happen before the write transaction
	details := make(map[string]ports.OrderDetail)
	for _, summary := range summaries {
		if _, ok := existing[summary.OrderNumber]; ok {
			continue
		}
		detail, err := h.feed.FetchOrderDetail(ctx, summary.ExternalID)
		if err != nil {
			h.log.Warn("order detail fetch failed, importing without detail",
				slog.String("order_number", summary.OrderNumber),
				slog.String("error", err.Error()))
			continue
		}
		details[summary.OrderNumber] = detail
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	for _, summary := range summaries {
		seen[summary.OrderNumber] = struct{}{}

		if aggregate, ok := existing[summary.OrderNumber]; ok {
			aggregate.RefreshStoreInfo(h.policies.StoreName(summary.StoreRef), "")
			if err = repo.Update(ctx, aggregate); err != nil {
				return 0, 0, err
			}
			updated++
			continue
		}

		aggregate, err := h.buildOrder(summary, details[summary.OrderNumber])
		if err != nil {
			h.log.Warn("skipping malformed feed order",
				slog.String("order_number", summary.OrderNumber),
				slog.String("error", err.Error()))
			continue
		}
		if err = repo.Add(ctx, aggregate); err != nil {
			return 0, 0, err
		}
		created++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}

// findExisting loads the locally known orders of a page in one read
// transaction.
func (h *SyncOrdersCommandHandler) findExisting(
	ctx context.Context,
	summaries []ports.OpenOrderSummary,
) (map[string]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	existing := make(map[string]*order.Order)

	for _, summary := range summaries {
		aggregate, err := repo.Get(ctx, summary.OrderNumber)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			return nil, err
		}
		existing[summary.OrderNumber] = aggregate
	}

	return existing, nil
}

func (h *SyncOrdersCommandHandler) buildOrder(
	summary ports.OpenOrderSummary,
	detail ports.OrderDetail,
) (*order.Order, error) {
	return order.NewOrder(
		kernel.NewUUID(),
		summary.OrderNumber,
		summary.Channel,
		detail.CustomerFreight,
		time.Now(),
		order.Details{
			ExternalRef:  summary.ExternalID,
			Store:        h.policies.StoreName(summary.StoreRef),
			CustomerName: detail.CustomerName,
			Carrier:      detail.CarrierName,
			TrackingCode: detail.TrackingCode,
		},
	)
}

// finish prunes local open orders that vanished upstream and stamps the
// last-sync record, in one final transaction.
func (h *SyncOrdersCommandHandler) finish(ctx context.Context, seen map[string]struct{}) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	openNumbers, err := repo.GetOpenOrderNumbers(ctx)
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, number := range openNumbers {
		if _, ok := seen[number]; ok {
			continue
		}
		if err = repo.Delete(ctx, number); err != nil {
			return 0, err
		}
		pruned++
	}

	if err = uow.SyncStateRepository().SetLastSync(ctx, LastSyncKindOrders, time.Now()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return pruned, nil
}
