// Package packagetyperepo persists the packaging catalog.
package packagetyperepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
)

// PackageTypeDTO represents the database structure for persisting package
// types. Deactivated rows stay in place so historical cost records keep a
// valid reference.
type PackageTypeDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name     string          `gorm:"uniqueIndex;not null"`
	UnitCost decimal.Decimal `gorm:"type:numeric(12,2)"`
	HeightCm float64
	WidthCm  float64
	LengthCm float64
	WeightKg *float64
	Stock    int
	Active   bool `gorm:"index"`
}

// TableName overrides GORM's default naming convention.
func (PackageTypeDTO) TableName() string {
	return "package_types"
}

// fromDomain converts a package type aggregate to its database representation.
func fromDomain(aggregate *packaging.PackageType) PackageTypeDTO {
	dims := aggregate.Dimensions()
	return PackageTypeDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		UnitCost: aggregate.UnitCost().Decimal(),
		HeightCm: dims.HeightCm,
		WidthCm:  dims.WidthCm,
		LengthCm: dims.LengthCm,
		WeightKg: dims.WeightKg,
		Stock:    aggregate.Stock(),
		Active:   aggregate.IsActive(),
	}
}

// toDomain converts a database DTO to a package type aggregate.
func toDomain(dto PackageTypeDTO) (*packaging.PackageType, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return packaging.RestorePackageType(id, dto.Name,
		kernel.MoneyFromDecimal(dto.UnitCost),
		packaging.Dimensions{
			HeightCm: dto.HeightCm,
			WidthCm:  dto.WidthCm,
			LengthCm: dto.LengthCm,
			WeightKg: dto.WeightKg,
		},
		dto.Stock, dto.Active)
}
