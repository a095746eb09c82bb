package commands

import (
	"context"
	"errors"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// CreateOrderCommandHandler handles manual order creation. Duplicate order
// numbers fail with a conflict; the check runs in the same transaction as
// the insert so a race still hits the unique constraint.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for manual order creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	existing, err := repo.Get(ctx, cmd.OrderNumber())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if existing != nil {
		return errs.NewConflictError("order", cmd.OrderNumber())
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.OrderNumber(), cmd.Channel(),
		cmd.CustomerFreight(), time.Now(), cmd.Details())
	if err != nil {
		return err
	}

	if err = repo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
