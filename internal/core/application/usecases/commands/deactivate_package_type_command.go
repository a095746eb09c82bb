package commands

import (
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrDeactivatePackageTypeCommandIsNotConstructed = errors.New(
	"DeactivatePackageTypeCommand must be created via NewDeactivatePackageTypeCommand constructor",
)

// DeactivatePackageTypeCommand represents the soft delete of a catalog
// entry. The row survives for historical cost lookups; it just stops being
// assignable to new orders.
type DeactivatePackageTypeCommand struct { //nolint:recvcheck //using for validation
	id kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeactivatePackageTypeCommand creates a command to deactivate a package
// type.
func NewDeactivatePackageTypeCommand(id kernel.UUID) (DeactivatePackageTypeCommand, error) {
	if err := id.Validate(); err != nil {
		return DeactivatePackageTypeCommand{}, err
	}

	return DeactivatePackageTypeCommand{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeactivatePackageTypeCommand) Validate() error {
	return c.guard.Validate(ErrDeactivatePackageTypeCommandIsNotConstructed)
}

// ID returns the package type to deactivate.
func (c DeactivatePackageTypeCommand) ID() kernel.UUID {
	return c.id
}
