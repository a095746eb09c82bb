package commands

import (
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand represents the admin-only removal of an order together
// with everything hanging off it: line items, cost record, audit entries.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	isAdmin     bool

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a command to delete an order.
func NewDeleteOrderCommand(orderNumber string, isAdmin bool) (DeleteOrderCommand, error) {
	if orderNumber == "" {
		return DeleteOrderCommand{}, errs.NewValueIsRequiredError("orderNumber")
	}

	return DeleteOrderCommand{
		orderNumber: orderNumber,
		isAdmin:     isAdmin,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

// OrderNumber returns the order to delete.
func (c DeleteOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// IsAdmin reports whether the caller holds the admin role.
func (c DeleteOrderCommand) IsAdmin() bool {
	return c.isAdmin
}
