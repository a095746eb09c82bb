package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// GetPackageTypeQueryHandler retrieves one catalog entry by ID.
type GetPackageTypeQueryHandler struct {
	db *gorm.DB
}

// NewGetPackageTypeQueryHandler creates a handler for single catalog reads.
func NewGetPackageTypeQueryHandler(db *gorm.DB) GetPackageTypeQueryHandler {
	return GetPackageTypeQueryHandler{db: db}
}

// Handle executes the lookup, returning a not-found error for unknown IDs.
func (h GetPackageTypeQueryHandler) Handle(
	ctx context.Context,
	query GetPackageTypeQuery,
) (PackageTypeResponse, error) {
	if err := query.Validate(); err != nil {
		return PackageTypeResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			unit_cost,
			height_cm,
			width_cm,
			length_cm,
			weight_kg,
			stock,
			active
		FROM package_types
		WHERE id = ?
	`, query.ID().Bytes()).Row()

	resp, err := scanPackageType(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PackageTypeResponse{}, errs.NewObjectNotFoundError("packageType", query.ID().String())
		}
		return PackageTypeResponse{}, err
	}

	return resp, nil
}
