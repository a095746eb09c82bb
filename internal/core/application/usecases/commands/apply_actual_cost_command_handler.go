package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// ApplyActualCostResult summarizes a real-cost batch: how many rows
// applied, and a message per row that could not be matched or applied.
type ApplyActualCostResult struct {
	Applied          int
	ProcessingErrors []string
}

// ApplyActualCostCommandHandler applies real carrier costs from the
// asynchronous correction feed. Each row runs in its own transaction so a
// bad row never rolls back its neighbors; re-derivation of the cost record
// reuses the reconciliation math on the stored record.
type ApplyActualCostCommandHandler struct {
	uowFactory CostUoWFactory
	log        *slog.Logger
}

// NewApplyActualCostCommandHandler creates a handler for real-cost
// ingestion.
func NewApplyActualCostCommandHandler(uowFactory CostUoWFactory, log *slog.Logger) ApplyActualCostCommandHandler {
	return ApplyActualCostCommandHandler{
		uowFactory: uowFactory,
		log:        log.With(slog.String("component", "apply_actual_cost")),
	}
}

// Handle processes the batch, returning per-row processing errors in the
// result instead of failing the command.
func (h *ApplyActualCostCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyActualCostCommand,
) (ApplyActualCostResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApplyActualCostResult{}, err
	}

	result := ApplyActualCostResult{}

	for i, row := range cmd.Rows() {
		if err := h.applyRow(ctx, row); err != nil {
			msg := fmt.Sprintf("row %d (%s%s): %s", i, row.TrackingCode, row.ExternalRef, err)
			result.ProcessingErrors = append(result.ProcessingErrors, msg)
			h.log.Warn("actual cost row not applied",
				slog.Int("row", i),
				slog.String("error", err.Error()))
			continue
		}
		result.Applied++
	}

	return result, nil
}

func (h *ApplyActualCostCommandHandler) applyRow(ctx context.Context, row ActualCostRow) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := h.matchOrder(ctx, uow, row)
	if err != nil {
		return err
	}

	costRepo := uow.CostRecordRepository()

	record, err := costRepo.Get(ctx, aggregate.OrderNumber())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return fmt.Errorf("order %s has no cost record yet", aggregate.OrderNumber())
		}
		return err
	}

	if err = record.ApplyActualCost(row.Amount, time.Now()); err != nil {
		return err
	}

	if err = costRepo.Upsert(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// matchOrder resolves a feed row to a local order, trying the tracking
// code first and the external reference second.
func (h *ApplyActualCostCommandHandler) matchOrder(
	ctx context.Context,
	uow CostUoW,
	row ActualCostRow,
) (*order.Order, error) {
	repo := uow.OrderRepository()

	if row.TrackingCode != "" {
		aggregate, err := repo.GetByTrackingCode(ctx, row.TrackingCode)
		if err == nil {
			return aggregate, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
	}

	if row.ExternalRef != "" {
		aggregate, err := repo.GetByExternalRef(ctx, row.ExternalRef)
		if err == nil {
			return aggregate, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("no local order matches the row")
}
