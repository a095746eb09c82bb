package packagetyperepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// GormPackageTypeRepository implements PackageTypeRepository using GORM.
type GormPackageTypeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPackageTypeRepository creates a new GORM package type repository.
func NewGormPackageTypeRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageTypeRepository {
	return &GormPackageTypeRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new package type to the database.
func (r *GormPackageTypeRepository) Add(ctx context.Context, aggregate *packaging.PackageType) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing package type. Every column is written so a
// deactivation (active=false) or a zeroed stock balance persists.
func (r *GormPackageTypeRepository) Update(ctx context.Context, aggregate *packaging.PackageType) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PackageTypeDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a package type by ID, whether active or deactivated.
func (r *GormPackageTypeRepository) Get(ctx context.Context, id kernel.UUID) (*packaging.PackageType, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a package type by ID, locking its row until the
// surrounding transaction ends. Catalog edits go through this so their
// read-modify-write never races a fulfillment stock debit on the same row.
func (r *GormPackageTypeRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*packaging.PackageType, error) {
	return r.get(ctx, id, true)
}

func (r *GormPackageTypeRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*packaging.PackageType, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto PackageTypeDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("packageType", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDs retrieves several package types at once, keyed by ID string.
// IDs with no matching row are simply absent from the result.
func (r *GormPackageTypeRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) (map[string]*packaging.PackageType, error) {
	return r.getByIDs(ctx, ids, false)
}

// GetByIDsForUpdate is GetByIDs with every returned row locked until the
// surrounding transaction ends. The fulfillment paths hold these locks
// across the stock read-modify-write, so two finalizes sharing a package
// type serialize instead of overwriting each other's debit.
func (r *GormPackageTypeRepository) GetByIDsForUpdate(ctx context.Context, ids []kernel.UUID) (map[string]*packaging.PackageType, error) {
	return r.getByIDs(ctx, ids, true)
}

func (r *GormPackageTypeRepository) getByIDs(ctx context.Context, ids []kernel.UUID, forUpdate bool) (map[string]*packaging.PackageType, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	query := r.db.WithContext(ctx)
	if forUpdate {
		// deterministic lock order keeps concurrent multi-row debits
		// deadlock-free
		query = query.Clauses(clause.Locking{Strength: "UPDATE"}).Order("id")
	}

	var dtos []PackageTypeDTO
	if err := query.Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]*packaging.PackageType, len(dtos))
	for _, dto := range dtos {
		pt, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		byID[pt.ID().String()] = pt
	}

	return byID, nil
}

// GetByName retrieves a package type by its unique catalog name.
func (r *GormPackageTypeRepository) GetByName(ctx context.Context, name string) (*packaging.PackageType, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	var dto PackageTypeDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("packageType", name)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll lists the catalog sorted by name, optionally active entries only.
func (r *GormPackageTypeRepository) GetAll(ctx context.Context, activeOnly bool) ([]*packaging.PackageType, error) {
	query := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var dtos []PackageTypeDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	types := make([]*packaging.PackageType, 0, len(dtos))
	for _, dto := range dtos {
		pt, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		types = append(types, pt)
	}

	return types, nil
}
