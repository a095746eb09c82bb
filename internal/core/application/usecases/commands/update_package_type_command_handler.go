package commands

import (
	"context"
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// UpdatePackageTypeCommandHandler handles partial catalog edits, including
// renames (which re-check name uniqueness).
type UpdatePackageTypeCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewUpdatePackageTypeCommandHandler creates a handler for package type
// updates.
func NewUpdatePackageTypeCommandHandler(uowFactory CatalogUoWFactory) UpdatePackageTypeCommandHandler {
	return UpdatePackageTypeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the update command inside one transaction.
func (h *UpdatePackageTypeCommandHandler) Handle(ctx context.Context, cmd UpdatePackageTypeCommand) error {
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

	repo := uow.PackageTypeRepository()

	packageType, err := repo.GetForUpdate(ctx, cmd.ID())
	if err != nil {
		return err
	}

	changes := cmd.Changes()
	if changes.Name != nil && *changes.Name != packageType.Name() {
		other, err := repo.GetByName(ctx, *changes.Name)
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		if other != nil {
			return errs.NewConflictError("package type", *changes.Name)
		}
	}

	if err = packageType.Update(changes); err != nil {
		return err
	}

	if err = repo.Update(ctx, packageType); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
