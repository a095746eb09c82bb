package ports

import (
	"context"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are addressed by their order number, the natural business key
// shared with cost records and audit entries.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Fails with a conflict error when the order number already exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, replacing its
	// line item set atomically.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by order number.
	Get(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetForUpdate retrieves an order by order number and locks its row for
	// the remainder of the transaction. Reserve, release and finalize load
	// through this method so concurrent check-then-act sequences serialize.
	GetForUpdate(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetByExternalRef retrieves an order by its upstream feed identifier.
	GetByExternalRef(ctx context.Context, externalRef string) (*order.Order, error)

	// GetByTrackingCode retrieves an order by carrier tracking code.
	GetByTrackingCode(ctx context.Context, trackingCode string) (*order.Order, error)

	// GetAllInStatus retrieves every order currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetOpenOrderNumbers returns the order numbers of all open orders.
	// Used by the sync to prune local orders no longer present upstream.
	GetOpenOrderNumbers(ctx context.Context) ([]string, error)

	// Delete removes an order together with its line items. Cost record and
	// audit entries cascade through their own repositories in the same
	// transaction.
	Delete(ctx context.Context, orderNumber string) error
}
