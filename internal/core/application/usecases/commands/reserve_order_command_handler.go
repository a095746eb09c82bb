package commands

import (
	"context"
	"time"
)

// ReserveOrderCommandHandler handles order reservations. The order row is
// loaded with a row lock so two operators racing for the same order
// serialize inside the database: exactly one wins, the other sees the
// winner's reservation and gets a conflict naming them.
type ReserveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReserveOrderCommandHandler creates a handler for order reservations.
func NewReserveOrderCommandHandler(uowFactory OrderUoWFactory) ReserveOrderCommandHandler {
	return ReserveOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reservation inside one transaction.
func (h *ReserveOrderCommandHandler) Handle(ctx context.Context, cmd ReserveOrderCommand) error {
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

	if err = aggregate.Reserve(cmd.OperatorID(), time.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
