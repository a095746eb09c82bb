package ports

import (
	"context"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
)

// PackageTypeRepository defines the persistence contract for the packaging
// catalog.
type PackageTypeRepository interface {
	// Add persists a new package type. Fails with a conflict error when the
	// name is already taken.
	Add(ctx context.Context, aggregate *packaging.PackageType) error

	// Update persists changes to an existing package type.
	Update(ctx context.Context, aggregate *packaging.PackageType) error

	// Get retrieves a package type by its unique identifier, whether active
	// or deactivated.
	Get(ctx context.Context, id kernel.UUID) (*packaging.PackageType, error)

	// GetForUpdate retrieves a package type by ID, locking its row until the
	// surrounding transaction ends. Every stock or catalog read-modify-write
	// must go through this so concurrent writers serialize per row.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*packaging.PackageType, error)

	// GetByIDs retrieves several package types at once, keyed by ID string.
	// Missing IDs are simply absent from the result; the caller decides
	// whether that is an error.
	GetByIDs(ctx context.Context, ids []kernel.UUID) (map[string]*packaging.PackageType, error)

	// GetByIDsForUpdate is GetByIDs with every returned row locked until the
	// surrounding transaction ends, for the fulfillment stock debit/credit
	// paths.
	GetByIDsForUpdate(ctx context.Context, ids []kernel.UUID) (map[string]*packaging.PackageType, error)

	// GetByName retrieves a package type by its unique name.
	GetByName(ctx context.Context, name string) (*packaging.PackageType, error)

	// GetAll lists the catalog, optionally restricted to active entries.
	GetAll(ctx context.Context, activeOnly bool) ([]*packaging.PackageType, error)
}
