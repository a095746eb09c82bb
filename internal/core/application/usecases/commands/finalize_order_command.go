package commands

import (
	"errors"
	"fmt"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrFinalizeOrderCommandIsNotConstructed = errors.New(
	"FinalizeOrderCommand must be created via NewFinalizeOrderCommand constructor",
)

// LineItemInput is one (package type, quantity) pair submitted with a
// finalize or edit request.
type LineItemInput struct {
	PackageTypeID kernel.UUID
	Quantity      int
}

// FinalizeOrderCommand represents an operator finishing an order: recording
// the packaging used, optionally the real carrier cost, and shipping it.
type FinalizeOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber       string
	actor             string
	items             []LineItemInput
	notes             string
	actualCarrierCost *kernel.Money

	guard guard.ConstructorGuard
}

// NewFinalizeOrderCommand creates a finalize command. At least one line
// item is required, every quantity must be positive and the actual carrier
// cost, when given, must not be negative.
func NewFinalizeOrderCommand(
	orderNumber string,
	actor string,
	items []LineItemInput,
	notes string,
	actualCarrierCost *kernel.Money,
) (FinalizeOrderCommand, error) {
	cmd := FinalizeOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setActor(actor),
		cmd.setItems(items),
		cmd.setActualCarrierCost(actualCarrierCost),
	); err != nil {
		return FinalizeOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeOrderCommandIsNotConstructed)
}

// OrderNumber returns the order to finalize.
func (c FinalizeOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Actor returns who is finalizing, recorded in the audit log.
func (c FinalizeOrderCommand) Actor() string {
	return c.actor
}

// Items returns the submitted packaging line items.
func (c FinalizeOrderCommand) Items() []LineItemInput {
	return append([]LineItemInput(nil), c.items...)
}

// Notes returns the operator's free-text notes.
func (c FinalizeOrderCommand) Notes() string {
	return c.notes
}

// ActualCarrierCost returns the real carrier cost when the operator
// supplied one, nil otherwise.
func (c FinalizeOrderCommand) ActualCarrierCost() *kernel.Money {
	return c.actualCarrierCost
}

func (c *FinalizeOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *FinalizeOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	c.actor = actor
	return nil
}

func (c *FinalizeOrderCommand) setItems(items []LineItemInput) error {
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

func (c *FinalizeOrderCommand) setActualCarrierCost(cost *kernel.Money) error {
	if cost != nil && cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("actualCarrierCost",
			fmt.Errorf("%s is negative", *cost))
	}
	c.actualCarrierCost = cost
	return nil
}
