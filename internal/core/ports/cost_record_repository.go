package ports

import (
	"context"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
)

// CostRecordRepository defines the persistence contract for cost records.
// A record is keyed 1:1 by order number and only ever upserted; the store
// must never hold two records for the same order.
type CostRecordRepository interface {
	// Upsert inserts the record or updates the existing row in place.
	Upsert(ctx context.Context, record *costing.CostRecord) error

	// Get retrieves the cost record of an order, or a not-found error when
	// the order has never been reconciled.
	Get(ctx context.Context, orderNumber string) (*costing.CostRecord, error)

	// Delete removes the record when its order is deleted.
	Delete(ctx context.Context, orderNumber string) error
}
