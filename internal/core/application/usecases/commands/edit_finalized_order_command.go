package commands

import (
	"errors"
	"fmt"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrEditFinalizedOrderCommandIsNotConstructed = errors.New(
	"EditFinalizedOrderCommand must be created via NewEditFinalizedOrderCommand constructor",
)

// EditFinalizedOrderCommand represents corrections to an already shipped
// order: field edits, a real carrier cost, or a replacement package list.
// The order stays Finalized and no audit entry is appended; only the first
// finalize is audited.
type EditFinalizedOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber       string
	changes           order.Changes
	items             []LineItemInput
	actualCarrierCost *kernel.Money

	guard guard.ConstructorGuard
}

// NewEditFinalizedOrderCommand creates an edit command. items is nil to
// keep the current package list; when given it must be non-empty with
// positive quantities. The actual carrier cost, when given, must not be
// negative.
func NewEditFinalizedOrderCommand(
	orderNumber string,
	changes order.Changes,
	items []LineItemInput,
	actualCarrierCost *kernel.Money,
) (EditFinalizedOrderCommand, error) {
	cmd := EditFinalizedOrderCommand{
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setItems(items),
		cmd.setActualCarrierCost(actualCarrierCost),
	); err != nil {
		return EditFinalizedOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditFinalizedOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditFinalizedOrderCommandIsNotConstructed)
}

// OrderNumber returns the order to edit.
func (c EditFinalizedOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Changes returns the partial field edit.
func (c EditFinalizedOrderCommand) Changes() order.Changes {
	return c.changes
}

// Items returns the replacement package list, nil to keep the current one.
func (c EditFinalizedOrderCommand) Items() []LineItemInput {
	if c.items == nil {
		return nil
	}
	return append([]LineItemInput(nil), c.items...)
}

// ActualCarrierCost returns the supplied real carrier cost, nil to keep the
// recorded one.
func (c EditFinalizedOrderCommand) ActualCarrierCost() *kernel.Money {
	return c.actualCarrierCost
}

func (c *EditFinalizedOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *EditFinalizedOrderCommand) setItems(items []LineItemInput) error {
	if items == nil {
		return nil
	}
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.PackageTypeID.Validate(); err != nil {
			return err
		}
		if item.Quantity < 1 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is not greater than 0", item.Quantity))
		}
	}
	c.items = append([]LineItemInput(nil), items...)
	return nil
}

func (c *EditFinalizedOrderCommand) setActualCarrierCost(cost *kernel.Money) error {
	if cost != nil && cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("actualCarrierCost",
			fmt.Errorf("%s is negative", *cost))
	}
	c.actualCarrierCost = cost
	return nil
}
