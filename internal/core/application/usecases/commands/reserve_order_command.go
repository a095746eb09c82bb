package commands

import (
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrReserveOrderCommandIsNotConstructed = errors.New(
	"ReserveOrderCommand must be created via NewReserveOrderCommand constructor",
)

// ReserveOrderCommand represents an operator's exclusive claim on an open
// order, preventing two operators from fulfilling it at once.
type ReserveOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	operatorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewReserveOrderCommand creates a command to reserve an order for an
// operator.
func NewReserveOrderCommand(orderNumber string, operatorID kernel.UUID) (ReserveOrderCommand, error) {
	cmd := ReserveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setOperatorID(operatorID),
	); err != nil {
		return ReserveOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReserveOrderCommand) Validate() error {
	return c.guard.Validate(ErrReserveOrderCommandIsNotConstructed)
}

// OrderNumber returns the order to reserve.
func (c ReserveOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// OperatorID returns the claiming operator.
func (c ReserveOrderCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

func (c *ReserveOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *ReserveOrderCommand) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}
	c.operatorID = operatorID
	return nil
}
