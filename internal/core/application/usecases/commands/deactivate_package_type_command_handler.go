package commands

import (
	"context"
)

// DeactivatePackageTypeCommandHandler handles the catalog soft delete.
type DeactivatePackageTypeCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewDeactivatePackageTypeCommandHandler creates a handler for package type
// deactivation.
func NewDeactivatePackageTypeCommandHandler(uowFactory CatalogUoWFactory) DeactivatePackageTypeCommandHandler {
	return DeactivatePackageTypeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deactivation inside one transaction. Deactivating an
// already inactive type is a no-op success.
func (h *DeactivatePackageTypeCommandHandler) Handle(ctx context.Context, cmd DeactivatePackageTypeCommand) error {
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

	packageType.Deactivate()

	if err = repo.Update(ctx, packageType); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
