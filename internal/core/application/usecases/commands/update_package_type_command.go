package commands

import (
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrUpdatePackageTypeCommandIsNotConstructed = errors.New(
	"UpdatePackageTypeCommand must be created via NewUpdatePackageTypeCommand constructor",
)

// UpdatePackageTypeCommand represents a partial edit of a catalog entry.
// Unset fields keep their current value.
type UpdatePackageTypeCommand struct { //nolint:recvcheck //using for validation
	id      kernel.UUID
	changes packaging.Changes

	guard guard.ConstructorGuard
}

// NewUpdatePackageTypeCommand creates a command to edit a package type.
func NewUpdatePackageTypeCommand(id kernel.UUID, changes packaging.Changes) (UpdatePackageTypeCommand, error) {
	cmd := UpdatePackageTypeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := id.Validate(); err != nil {
		return UpdatePackageTypeCommand{}, err
	}

	cmd.id = id
	cmd.changes = changes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePackageTypeCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePackageTypeCommandIsNotConstructed)
}

// ID returns the package type to edit.
func (c UpdatePackageTypeCommand) ID() kernel.UUID {
	return c.id
}

// Changes returns the partial edit.
func (c UpdatePackageTypeCommand) Changes() packaging.Changes {
	return c.changes
}
