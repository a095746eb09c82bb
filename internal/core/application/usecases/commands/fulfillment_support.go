package commands

import (
	"context"
	"log/slog"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
	"github.com/GhostBC/SistemaLogistica/internal/core/ports"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// resolvePackageTypes loads every package type referenced by the submitted
// items, failing with a not-found error that names the first missing ID.
// The rows come back locked for the surrounding transaction: the caller is
// about to debit their stock, and the read-modify-write must serialize
// against other finalizes sharing a package type.
// When forbidInactive is set, deactivated types are rejected: they resolve
// for historical cost lookups but are not assignable to new work.
func resolvePackageTypes(
	ctx context.Context,
	repo ports.PackageTypeRepository,
	items []LineItemInput,
	forbidInactive bool,
) (map[string]*packaging.PackageType, error) {
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.PackageTypeID)
	}

	types, err := repo.GetByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		pt, ok := types[item.PackageTypeID.String()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("packageTypeID", item.PackageTypeID.String())
		}
		if forbidInactive && !pt.IsActive() {
			return nil, errs.NewValueIsInvalidError(
				"packageTypeID " + pt.ID().String() + " (deactivated types are not assignable)")
		}
	}

	return types, nil
}

// debitStock applies the unconditional per-line stock debit and persists
// each touched package type. A balance below zero is a warning, never an
// error.
func debitStock(
	ctx context.Context,
	repo ports.PackageTypeRepository,
	items []order.LineItem,
	types map[string]*packaging.PackageType,
	log *slog.Logger,
) error {
	for _, item := range items {
		pt := types[item.PackageTypeID().String()]

		balance, err := pt.Debit(item.Quantity())
		if err != nil {
			return err
		}
		if balance < 0 {
			log.Warn("package stock went negative",
				slog.String("package_type", pt.Name()),
				slog.Int("stock", balance))
		}

		if err = repo.Update(ctx, pt); err != nil {
			return err
		}
	}

	return nil
}

// creditStock reverses an earlier debit for every given line item,
// persisting each touched package type. Used by edit-after-finalize before
// the replacement items are debited.
func creditStock(
	ctx context.Context,
	repo ports.PackageTypeRepository,
	items []order.LineItem,
	types map[string]*packaging.PackageType,
) error {
	for _, item := range items {
		pt, ok := types[item.PackageTypeID().String()]
		if !ok {
			return errs.NewObjectNotFoundError("packageTypeID", item.PackageTypeID().String())
		}

		if _, err := pt.Credit(item.Quantity()); err != nil {
			return err
		}
		if err := repo.Update(ctx, pt); err != nil {
			return err
		}
	}

	return nil
}

// buildLineItems converts command inputs into domain line items.
func buildLineItems(inputs []LineItemInput) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(inputs))
	for _, input := range inputs {
		item, err := order.NewLineItem(input.PackageTypeID, input.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
