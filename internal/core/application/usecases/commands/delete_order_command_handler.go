package commands

import (
	"context"

	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// DeleteOrderCommandHandler handles the cascading removal of an order.
// The cost record and audit entries go first so no orphan rows survive a
// partial failure; all three deletes commit as one transaction.
type DeleteOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory FulfillmentUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deletion. Non-admin callers are rejected before any
// data is touched.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.IsAdmin() {
		return errs.NewForbiddenError("operator", "delete orders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	// confirm the order exists so the caller gets a clean not-found
	if _, err := orderRepo.GetForUpdate(ctx, cmd.OrderNumber()); err != nil {
		return err
	}

	if err := uow.CostRecordRepository().Delete(ctx, cmd.OrderNumber()); err != nil {
		return err
	}

	if err := uow.AuditRepository().DeleteByOrderNumber(ctx, cmd.OrderNumber()); err != nil {
		return err
	}

	if err := orderRepo.Delete(ctx, cmd.OrderNumber()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
