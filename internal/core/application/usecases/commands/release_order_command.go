package commands

import (
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrReleaseOrderCommandIsNotConstructed = errors.New(
	"ReleaseOrderCommand must be created via NewReleaseOrderCommand constructor",
)

// ReleaseOrderCommand represents dropping a reservation. Only the holder
// may release; admins may override stale reservations left by operators who
// went home.
type ReleaseOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	operatorID  kernel.UUID
	isAdmin     bool

	guard guard.ConstructorGuard
}

// NewReleaseOrderCommand creates a command to release an order reservation.
func NewReleaseOrderCommand(orderNumber string, operatorID kernel.UUID, isAdmin bool) (ReleaseOrderCommand, error) {
	cmd := ReleaseOrderCommand{
		isAdmin: isAdmin,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setOperatorID(operatorID),
	); err != nil {
		return ReleaseOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrReleaseOrderCommandIsNotConstructed)
}

// OrderNumber returns the order to release.
func (c ReleaseOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// OperatorID returns the requesting operator.
func (c ReleaseOrderCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

// IsAdmin reports whether the caller may override another holder.
func (c ReleaseOrderCommand) IsAdmin() bool {
	return c.isAdmin
}

func (c *ReleaseOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *ReleaseOrderCommand) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}
	c.operatorID = operatorID
	return nil
}
