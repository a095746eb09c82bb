package commands

import (
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents manual entry of an order that did not come
// through the marketplace sync (phone sales, replacements).
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	orderNumber     string
	channel         string
	customerFreight kernel.Money
	details         order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register an order by hand.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderNumber string,
	channel string,
	customerFreight kernel.Money,
	details order.Details,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderNumber(orderNumber),
		cmd.setChannel(channel),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.customerFreight = customerFreight
	cmd.details = details
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the business key of the new order.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Channel returns the sales channel.
func (c CreateOrderCommand) Channel() string {
	return c.channel
}

// CustomerFreight returns the freight the customer paid.
func (c CreateOrderCommand) CustomerFreight() kernel.Money {
	return c.customerFreight
}

// Details returns the optional descriptive fields.
func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setChannel(channel string) error {
	if channel == "" {
		return errs.NewValueIsRequiredError("channel")
	}
	c.channel = channel
	return nil
}
