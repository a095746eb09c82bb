package commands

import (
	"context"
)

// ReleaseOrderCommandHandler handles reservation releases under the same
// row lock as reservations.
type ReleaseOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReleaseOrderCommandHandler creates a handler for reservation releases.
func NewReleaseOrderCommandHandler(uowFactory OrderUoWFactory) ReleaseOrderCommandHandler {
	return ReleaseOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the release inside one transaction.
func (h *ReleaseOrderCommandHandler) Handle(ctx context.Context, cmd ReleaseOrderCommand) error {
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

	aggregate, err := repo.GetForUpdate(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	if err = aggregate.Release(cmd.OperatorID(), cmd.IsAdmin()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
