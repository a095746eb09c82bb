package commands

import (
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a partial edit of an order that has not
// shipped yet. Finalized orders are edited through EditFinalizedOrderCommand
// instead.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	changes     order.Changes

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to edit an open order.
func NewUpdateOrderCommand(orderNumber string, changes order.Changes) (UpdateOrderCommand, error) {
	if orderNumber == "" {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredError("orderNumber")
	}

	return UpdateOrderCommand{
		orderNumber: orderNumber,
		changes:     changes,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderNumber returns the order to edit.
func (c UpdateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Changes returns the partial edit.
func (c UpdateOrderCommand) Changes() order.Changes {
	return c.changes
}
