package ports

import (
	"context"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/audit"
)

// AuditRepository defines the persistence contract for the append-only
// audit log. Entries are never updated; the only removal path is the
// cascading delete of their order.
type AuditRepository interface {
	// Add appends an audit entry.
	Add(ctx context.Context, entry *audit.Entry) error

	// GetByOrderNumber lists the entries of one order, oldest first.
	GetByOrderNumber(ctx context.Context, orderNumber string) ([]*audit.Entry, error)

	// DeleteByOrderNumber removes all entries of an order when the order
	// itself is deleted.
	DeleteByOrderNumber(ctx context.Context, orderNumber string) error
}
