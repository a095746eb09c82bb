// Package queries contains the read side of the application: listings and
// report aggregations that go straight to the database, bypassing the
// aggregates and the unit of work.
package queries

import (
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var (
	ErrListPackageTypesQueryIsNotConstructed = errors.New(
		"ListPackageTypesQuery must be created via NewListPackageTypesQuery constructor",
	)
)

// ListPackageTypesQuery lists the packaging catalog. When ActiveOnly is set,
// deactivated entries are filtered out; the full catalog view keeps them so
// historical records stay explainable.
type ListPackageTypesQuery struct {
	activeOnly bool

	guard guard.ConstructorGuard
}

// NewListPackageTypesQuery creates a catalog listing query.
func NewListPackageTypesQuery(activeOnly bool) ListPackageTypesQuery {
	return ListPackageTypesQuery{
		activeOnly: activeOnly,
		guard:      guard.NewConstructorGuard(),
	}
}

// ActiveOnly reports whether deactivated entries should be filtered out.
func (q ListPackageTypesQuery) ActiveOnly() bool {
	return q.activeOnly
}

// Validate ensures the query was created through the constructor.
func (q ListPackageTypesQuery) Validate() error {
	return q.guard.Validate(ErrListPackageTypesQueryIsNotConstructed)
}

// PackageTypeResponse represents one catalog entry in query results.
type PackageTypeResponse struct {
	ID       kernel.UUID
	Name     string
	UnitCost kernel.Money
	HeightCm float64
	WidthCm  float64
	LengthCm float64
	WeightKg *float64
	Stock    int
	Active   bool
}
