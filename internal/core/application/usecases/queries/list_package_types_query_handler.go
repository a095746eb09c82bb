package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
)

// ListPackageTypesQueryHandler reads the packaging catalog directly from the
// database, sorted by name.
type ListPackageTypesQueryHandler struct {
	db *gorm.DB
}

// NewListPackageTypesQueryHandler creates a handler for catalog listings.
func NewListPackageTypesQueryHandler(db *gorm.DB) ListPackageTypesQueryHandler {
	return ListPackageTypesQueryHandler{db: db}
}

// Handle executes the catalog listing.
func (h ListPackageTypesQueryHandler) Handle(
	ctx context.Context,
	query ListPackageTypesQuery,
) ([]PackageTypeResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
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
	`
	args := make([]any, 0, 1)
	if query.ActiveOnly() {
		sql += " WHERE active = ?"
		args = append(args, true)
	}
	sql += " ORDER BY name"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]PackageTypeResponse, 0)
	for rows.Next() {
		resp, err := scanPackageType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPackageType(row rowScanner) (PackageTypeResponse, error) {
	var resp PackageTypeResponse
	var id uuid.UUID
	var unitCost decimal.Decimal

	err := row.Scan(
		&id,
		&resp.Name,
		&unitCost,
		&resp.HeightCm,
		&resp.WidthCm,
		&resp.LengthCm,
		&resp.WeightKg,
		&resp.Stock,
		&resp.Active,
	)
	if err != nil {
		return PackageTypeResponse{}, err
	}

	typeID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return PackageTypeResponse{}, err
	}
	resp.ID = typeID
	resp.UnitCost = kernel.MoneyFromDecimal(unitCost)
	return resp, nil
}
