package commands

import (
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrCreatePackageTypeCommandIsNotConstructed = errors.New(
	"CreatePackageTypeCommand must be created via NewCreatePackageTypeCommand constructor",
)

// CreatePackageTypeCommand represents a request to add a packaging material
// to the catalog.
type CreatePackageTypeCommand struct { //nolint:recvcheck //using for validation
	id           kernel.UUID
	name         string
	unitCost     kernel.Money
	dimensions   packaging.Dimensions
	initialStock int

	guard guard.ConstructorGuard
}

// NewCreatePackageTypeCommand creates a command to register a new package
// type. Name must be non-empty; the unit cost and dimension checks are
// delegated to the aggregate constructor in the handler.
func NewCreatePackageTypeCommand(
	id kernel.UUID,
	name string,
	unitCost kernel.Money,
	dimensions packaging.Dimensions,
	initialStock int,
) (CreatePackageTypeCommand, error) {
	cmd := CreatePackageTypeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setID(id),
		cmd.setName(name),
	); err != nil {
		return CreatePackageTypeCommand{}, err
	}

	cmd.unitCost = unitCost
	cmd.dimensions = dimensions
	cmd.initialStock = initialStock
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePackageTypeCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackageTypeCommandIsNotConstructed)
}

// ID returns the identifier assigned to the new package type.
func (c CreatePackageTypeCommand) ID() kernel.UUID {
	return c.id
}

// Name returns the catalog name.
func (c CreatePackageTypeCommand) Name() string {
	return c.name
}

// UnitCost returns the cost of a single unit.
func (c CreatePackageTypeCommand) UnitCost() kernel.Money {
	return c.unitCost
}

// Dimensions returns the physical measurements.
func (c CreatePackageTypeCommand) Dimensions() packaging.Dimensions {
	return c.dimensions
}

// InitialStock returns the starting stock count.
func (c CreatePackageTypeCommand) InitialStock() int {
	return c.initialStock
}

func (c *CreatePackageTypeCommand) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *CreatePackageTypeCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}
