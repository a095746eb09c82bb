package ports

import (
	"context"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
)

// OpenOrderSummary is one order from a page of the upstream feed, already
// normalized by the adapter's tolerant decoder. The core never sees the
// provider's raw payload shapes.
type OpenOrderSummary struct {
	ExternalID  string
	OrderNumber string
	Channel     string
	StoreRef    string
}

// OrderDetail is the per-order detail fetch, normalized like the summary.
type OrderDetail struct {
	CarrierName     string
	CustomerFreight kernel.Money
	TrackingCode    string
	StoreRef        string
	CustomerName    string
}

// OrderFeed is the upstream marketplace hub the orders are synced from.
// Implementations block on network I/O with short timeouts and must honor
// context cancellation; callers never invoke them inside a datastore
// transaction.
type OrderFeed interface {
	// FetchOpenOrders returns one page of currently open orders and whether
	// more pages follow.
	FetchOpenOrders(ctx context.Context, page int) (orders []OpenOrderSummary, hasMore bool, err error)

	// FetchOrderDetail returns the detail of a single order.
	FetchOrderDetail(ctx context.Context, externalID string) (OrderDetail, error)
}

// CarrierQuoteProvider quotes the shipping cost of an order with the
// contracted carrier, keyed by the order's external reference. A missing
// quote is (zero, false, nil): absence is normal and never blocks finalize.
type CarrierQuoteProvider interface {
	QuoteCost(ctx context.Context, externalRef string) (amount kernel.Money, found bool, err error)
}

// MarketplaceCostProvider reports the freight the marketplace charged the
// store for an order. Same absence semantics as CarrierQuoteProvider.
type MarketplaceCostProvider interface {
	MarketplaceCost(ctx context.Context, orderNumber, channel string) (amount kernel.Money, found bool, err error)
}
