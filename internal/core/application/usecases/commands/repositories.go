// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"github.com/GhostBC/SistemaLogistica/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends on the narrowest composition that covers
// the aggregates it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PackageTypeRepoFactory provides access to the packaging catalog
	// repository within a transaction.
	PackageTypeRepoFactory interface {
		PackageTypeRepository() ports.PackageTypeRepository
	}

	// CostRecordRepoFactory provides access to the cost record repository
	// within a transaction.
	CostRecordRepoFactory interface {
		CostRecordRepository() ports.CostRecordRepository
	}

	// AuditRepoFactory provides access to the audit log repository within a
	// transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// SyncStateRepoFactory provides access to the sync state repository
	// within a transaction.
	SyncStateRepoFactory interface {
		SyncStateRepository() ports.SyncStateRepository
	}

	// OrderUoW manages transactions for order-only operations
	// (create, update, reserve, release).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CatalogUoW manages transactions for packaging catalog operations.
	CatalogUoW interface {
		TxManager
		PackageTypeRepoFactory
	}

	// CatalogUoWFactory creates new catalog unit of work instances.
	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// FulfillmentUoW manages the finalize/edit transaction, which spans the
	// order, the catalog stock, the cost record and the audit log.
	FulfillmentUoW interface {
		TxManager
		OrderRepoFactory
		PackageTypeRepoFactory
		CostRecordRepoFactory
		AuditRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// CostUoW manages transactions that touch orders and cost records only
	// (real-cost ingestion).
	CostUoW interface {
		TxManager
		OrderRepoFactory
		CostRecordRepoFactory
	}

	// CostUoWFactory creates new cost unit of work instances.
	CostUoWFactory interface {
		Create() CostUoW
	}

	// SyncUoW manages one page of the bulk order sync: order rows plus the
	// last-sync bookkeeping.
	SyncUoW interface {
		TxManager
		OrderRepoFactory
		SyncStateRepoFactory
	}

	// SyncUoWFactory creates new sync unit of work instances.
	SyncUoWFactory interface {
		Create() SyncUoW
	}
)
