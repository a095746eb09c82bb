package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/services"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// EditFinalizedOrderCommandHandler handles post-finalize corrections.
//
// Stock reversal follows credit-then-debit: the previously recorded line
// items are credited back to their package types before the replacement
// list is debited, so resubmitting an identical list nets to zero on every
// stock counter. The identical case is detected up front and skips the
// stock round-trip entirely. The cost record is recomputed either way; no
// audit entry is appended.
type EditFinalizedOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	resolver   CarrierCostResolver
	calculator services.CostCalculator
	log        *slog.Logger
}

// NewEditFinalizedOrderCommandHandler creates a handler for edits to
// finalized orders.
func NewEditFinalizedOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	resolver CarrierCostResolver,
	calculator services.CostCalculator,
	log *slog.Logger,
) EditFinalizedOrderCommandHandler {
	return EditFinalizedOrderCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		calculator: calculator,
		log:        log.With(slog.String("component", "edit_finalized_order")),
	}
}

// Handle processes the edit command.
func (h *EditFinalizedOrderCommandHandler) Handle(ctx context.Context, cmd EditFinalizedOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	estimate, err := h.resolveEstimate(ctx, cmd)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	if err = aggregate.Amend(cmd.Changes()); err != nil {
		return err
	}

	items, types, err := h.applyItemReplacement(ctx, uow, aggregate, cmd.Items())
	if err != nil {
		return err
	}

	actual, err := h.resolveActualCost(ctx, uow, cmd)
	if err != nil {
		return err
	}

	now := time.Now()
	record, err := h.calculator.Calculate(aggregate, items, types, estimate, actual, now)
	if err != nil {
		return err
	}

	if err = uow.CostRecordRepository().Upsert(ctx, record); err != nil {
		return errs.NewCostComputationError(cmd.OrderNumber(), err)
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// resolveEstimate reads the order without a lock, applies the pending field
// edits to the in-memory copy so channel/freight corrections influence the
// estimate, and resolves the carrier cost outside the transaction.
func (h *EditFinalizedOrderCommandHandler) resolveEstimate(
	ctx context.Context,
	cmd EditFinalizedOrderCommand,
) (services.CarrierEstimate, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.CarrierEstimate{}, err
	}

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderNumber())
	_ = uow.Rollback(ctx)
	if err != nil {
		return services.CarrierEstimate{}, err
	}

	if err = aggregate.Amend(cmd.Changes()); err != nil {
		return services.CarrierEstimate{}, err
	}

	if !h.calculator.NeedsCarrierEstimate(aggregate) {
		return services.CarrierEstimate{}, nil
	}
	return h.resolver.Resolve(ctx, aggregate), nil
}

// applyItemReplacement swaps the package list when the command carries one,
// crediting the old items before debiting the new. Returns the effective
// line items and the package types needed for cost computation.
func (h *EditFinalizedOrderCommandHandler) applyItemReplacement(
	ctx context.Context,
	uow FulfillmentUoW,
	aggregate *order.Order,
	inputs []LineItemInput,
) ([]order.LineItem, map[string]*packaging.PackageType, error) {
	current := aggregate.LineItems()

	if inputs == nil {
		// keep the recorded list; load its types for the cost math only
		types, err := h.loadTypesForItems(ctx, uow, current)
		if err != nil {
			return nil, nil, err
		}
		return current, types, nil
	}

	replacement, err := buildLineItems(inputs)
	if err != nil {
		return nil, nil, err
	}

	if order.EqualLineItemLists(current, replacement) {
		types, err := h.loadTypesForItems(ctx, uow, current)
		if err != nil {
			return nil, nil, err
		}
		return current, types, nil
	}

	repo := uow.PackageTypeRepository()

	oldTypes, err := h.loadTypesForItems(ctx, uow, current)
	if err != nil {
		return nil, nil, err
	}
	if err = creditStock(ctx, repo, current, oldTypes); err != nil {
		return nil, nil, err
	}

	newTypes, err := resolvePackageTypes(ctx, repo, inputs, true)
	if err != nil {
		return nil, nil, err
	}
	if err = debitStock(ctx, repo, replacement, newTypes, h.log); err != nil {
		return nil, nil, err
	}

	if err = aggregate.ReplaceLineItems(replacement); err != nil {
		return nil, nil, err
	}

	return replacement, newTypes, nil
}

// loadTypesForItems fetches the package types of already recorded line
// items, row-locked because the credit path mutates their stock.
// Deactivated types are acceptable here: the items were assigned while the
// types were still active.
func (h *EditFinalizedOrderCommandHandler) loadTypesForItems(
	ctx context.Context,
	uow FulfillmentUoW,
	items []order.LineItem,
) (map[string]*packaging.PackageType, error) {
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.PackageTypeID())
	}

	types, err := uow.PackageTypeRepository().GetByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if _, ok := types[item.PackageTypeID().String()]; !ok {
			return nil, errs.NewObjectNotFoundError("packageTypeID", item.PackageTypeID().String())
		}
	}

	return types, nil
}

// resolveActualCost prefers the cost supplied with the edit, falling back
// to the actual cost already on the record so a field-only edit never
// forgets a webhook-delivered real cost.
func (h *EditFinalizedOrderCommandHandler) resolveActualCost(
	ctx context.Context,
	uow FulfillmentUoW,
	cmd EditFinalizedOrderCommand,
) (*kernel.Money, error) {
	if cmd.ActualCarrierCost() != nil {
		return cmd.ActualCarrierCost(), nil
	}

	record, err := uow.CostRecordRepository().Get(ctx, cmd.OrderNumber())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.ActualCarrierCost(), nil
}
