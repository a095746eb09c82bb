package commands

import (
	"context"
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// CreatePackageTypeCommandHandler handles catalog additions. Name
// uniqueness is enforced here: a duplicate fails with a conflict before the
// aggregate is ever built.
type CreatePackageTypeCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewCreatePackageTypeCommandHandler creates a handler for package type
// creation.
func NewCreatePackageTypeCommandHandler(uowFactory CatalogUoWFactory) CreatePackageTypeCommandHandler {
	return CreatePackageTypeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the creation command inside one transaction.
func (h *CreatePackageTypeCommandHandler) Handle(ctx context.Context, cmd CreatePackageTypeCommand) error {
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

	existing, err := repo.GetByName(ctx, cmd.Name())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if existing != nil {
		return errs.NewConflictError("package type", cmd.Name())
	}

	packageType, err := packaging.NewPackageType(
		cmd.ID(), cmd.Name(), cmd.UnitCost(), cmd.Dimensions(), cmd.InitialStock())
	if err != nil {
		return err
	}

	if err = repo.Add(ctx, packageType); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
