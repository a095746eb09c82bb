package costrecordrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// GormCostRecordRepository implements CostRecordRepository using GORM.
type GormCostRecordRepository struct {
	db *gorm.DB
}

// NewGormCostRecordRepository creates a new GORM cost record repository.
func NewGormCostRecordRepository(db *gorm.DB) *GormCostRecordRepository {
	return &GormCostRecordRepository{db: db}
}

// Upsert inserts the record or replaces the existing row for its order.
func (r *GormCostRecordRepository) Upsert(ctx context.Context, record *costing.CostRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_number"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// Get retrieves the cost record of an order.
func (r *GormCostRecordRepository) Get(ctx context.Context, orderNumber string) (*costing.CostRecord, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	var dto CostRecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("costRecord", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the record of an order. Deleting a record that does not
// exist is a no-op so the order delete cascade stays idempotent.
func (r *GormCostRecordRepository) Delete(ctx context.Context, orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	return r.db.WithContext(ctx).Delete(&CostRecordDTO{}, "order_number = ?", orderNumber).Error
}
