package syncstaterepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// GormSyncStateRepository implements SyncStateRepository using GORM.
type GormSyncStateRepository struct {
	db *gorm.DB
}

// NewGormSyncStateRepository creates a new GORM sync state repository.
func NewGormSyncStateRepository(db *gorm.DB) *GormSyncStateRepository {
	return &GormSyncStateRepository{db: db}
}

// GetLastSync returns when the given sync kind last completed, or nil when
// it has never run.
func (r *GormSyncStateRepository) GetLastSync(ctx context.Context, kind string) (*time.Time, error) {
	if kind == "" {
		return nil, errs.NewValueIsRequiredError("kind")
	}

	var dto SyncStateDTO
	if err := r.db.WithContext(ctx).First(&dto, "kind = ?", kind).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &dto.LastSyncAt, nil
}

// SetLastSync upserts the completion time of a sync kind.
func (r *GormSyncStateRepository) SetLastSync(ctx context.Context, kind string, at time.Time) error {
	if kind == "" {
		return errs.NewValueIsRequiredError("kind")
	}

	dto := SyncStateDTO{Kind: kind, LastSyncAt: at}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// GetSetting returns a system setting value.
func (r *GormSyncStateRepository) GetSetting(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errs.NewValueIsRequiredError("key")
	}

	var dto SystemSettingDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("setting", key)
		}
		return "", err
	}

	return dto.Value, nil
}

// SetSetting upserts a system setting.
func (r *GormSyncStateRepository) SetSetting(ctx context.Context, key, value, description string) error {
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}

	dto := SystemSettingDTO{Key: key, Value: value, Description: description}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
