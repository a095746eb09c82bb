package auditrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/audit"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// GormAuditRepository implements AuditRepository using GORM. The log is
// append-only: there is no update path, and the only delete is the cascade
// that follows an order's removal.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Add appends an audit entry.
func (r *GormAuditRepository) Add(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOrderNumber lists the entries of one order, oldest first.
func (r *GormAuditRepository) GetByOrderNumber(ctx context.Context, orderNumber string) ([]*audit.Entry, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	var dtos []AuditEntryDTO
	err := r.db.WithContext(ctx).
		Order("occurred_at").
		Find(&dtos, "order_number = ?", orderNumber).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// DeleteByOrderNumber removes all entries of an order.
func (r *GormAuditRepository) DeleteByOrderNumber(ctx context.Context, orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	return r.db.WithContext(ctx).Delete(&AuditEntryDTO{}, "order_number = ?", orderNumber).Error
}
