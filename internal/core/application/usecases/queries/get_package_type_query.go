package queries

import (
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var (
	ErrGetPackageTypeQueryIsNotConstructed = errors.New(
		"GetPackageTypeQuery must be created via NewGetPackageTypeQuery constructor",
	)
)

// GetPackageTypeQuery retrieves one catalog entry by ID, deactivated entries
// included.
type GetPackageTypeQuery struct {
	id kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPackageTypeQuery creates a single-entry catalog query.
func NewGetPackageTypeQuery(id kernel.UUID) (GetPackageTypeQuery, error) {
	if err := id.Validate(); err != nil {
		return GetPackageTypeQuery{}, err
	}
	return GetPackageTypeQuery{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ID returns the requested package type ID.
func (q GetPackageTypeQuery) ID() kernel.UUID {
	return q.id
}

// Validate ensures the query was created through the constructor.
func (q GetPackageTypeQuery) Validate() error {
	return q.guard.Validate(ErrGetPackageTypeQueryIsNotConstructed)
}
