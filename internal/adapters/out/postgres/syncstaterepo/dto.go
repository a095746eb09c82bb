// Package syncstaterepo persists the sync timestamps and system settings
// that live outside the domain aggregates.
package syncstaterepo

import "time"

// SyncStateDTO holds one last-completed timestamp per sync kind.
type SyncStateDTO struct {
	Kind       string `gorm:"primaryKey"`
	LastSyncAt time.Time
}

// TableName overrides GORM's default naming convention.
func (SyncStateDTO) TableName() string {
	return "sync_states"
}

// SystemSettingDTO is a free-form key/value setting, such as the daily
// captured sales target.
type SystemSettingDTO struct {
	Key         string `gorm:"primaryKey;column:key"`
	Value       string `gorm:"not null"`
	Description string
	UpdatedAt   time.Time
}

// TableName overrides GORM's default naming convention.
func (SystemSettingDTO) TableName() string {
	return "system_settings"
}
