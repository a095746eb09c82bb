package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/audit"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/services"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// FinalizeOrderCommandHandler handles the fulfillment of an order: line
// items recorded, stock debited, cost reconciled, status flipped to
// Finalized and the reservation cleared, all in one transaction.
//
// The carrier-cost estimate is resolved through external providers BEFORE
// the transaction opens; no provider call ever holds a database transaction.
type FinalizeOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	resolver   CarrierCostResolver
	calculator services.CostCalculator
	log        *slog.Logger
}

// NewFinalizeOrderCommandHandler creates a handler for order finalization.
func NewFinalizeOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	resolver CarrierCostResolver,
	calculator services.CostCalculator,
	log *slog.Logger,
) FinalizeOrderCommandHandler {
	return FinalizeOrderCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		calculator: calculator,
		log:        log.With(slog.String("component", "finalize_order")),
	}
}

// orderSnapshot is the audit before/after shape for a finalize.
type orderSnapshot struct {
	Status   string            `json:"status"`
	Packages []packageSnapshot `json:"packages"`
	Notes    string            `json:"notes,omitempty"`
}

type packageSnapshot struct {
	PackageTypeID string `json:"package_type_id"`
	Quantity      int    `json:"quantity"`
}

// Handle processes the finalize command.
func (h *FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd FinalizeOrderCommand) error {
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

	if err = h.calculator.ValidateActualCostRequirement(aggregate.Channel(), cmd.ActualCarrierCost()); err != nil {
		return err
	}

	types, err := resolvePackageTypes(ctx, uow.PackageTypeRepository(), cmd.Items(), true)
	if err != nil {
		return err
	}

	items, err := buildLineItems(cmd.Items())
	if err != nil {
		return err
	}

	before := h.snapshot(aggregate)

	now := time.Now()
	if err = aggregate.Finalize(items, now); err != nil {
		return err
	}
	aggregate.RecordNotes(cmd.Notes())

	if err = debitStock(ctx, uow.PackageTypeRepository(), items, types, h.log); err != nil {
		return err
	}

	record, err := h.calculator.Calculate(aggregate, items, types, estimate, cmd.ActualCarrierCost(), now)
	if err != nil {
		return err
	}

	if err = uow.CostRecordRepository().Upsert(ctx, record); err != nil {
		return errs.NewCostComputationError(cmd.OrderNumber(), err)
	}

	if err = h.appendAuditEntry(ctx, uow, cmd, aggregate, before, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// resolveEstimate fetches the carrier-cost estimate outside the
// transaction. The order is read without a lock just to learn its channel,
// freight and external reference; the locked re-read inside the transaction
// is authoritative for everything else.
func (h *FinalizeOrderCommandHandler) resolveEstimate(
	ctx context.Context,
	cmd FinalizeOrderCommand,
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

	if !h.calculator.NeedsCarrierEstimate(aggregate) {
		return services.CarrierEstimate{}, nil
	}
	return h.resolver.Resolve(ctx, aggregate), nil
}

func (h *FinalizeOrderCommandHandler) appendAuditEntry(
	ctx context.Context,
	uow FulfillmentUoW,
	cmd FinalizeOrderCommand,
	aggregate *order.Order,
	before orderSnapshot,
	at time.Time,
) error {
	beforeJSON, err := json.Marshal(before)
	if err != nil {
		return err
	}
	afterJSON, err := json.Marshal(h.snapshot(aggregate))
	if err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.Actor(), "finalize", "order",
		cmd.OrderNumber(), string(beforeJSON), string(afterJSON), at)
	if err != nil {
		return err
	}

	return uow.AuditRepository().Add(ctx, entry)
}

func (h *FinalizeOrderCommandHandler) snapshot(aggregate *order.Order) orderSnapshot {
	items := aggregate.LineItems()
	packages := make([]packageSnapshot, 0, len(items))
	for _, item := range items {
		packages = append(packages, packageSnapshot{
			PackageTypeID: item.PackageTypeID().String(),
			Quantity:      item.Quantity(),
		})
	}
	return orderSnapshot{
		Status:   aggregate.Status().String(),
		Packages: packages,
		Notes:    aggregate.Notes(),
	}
}
