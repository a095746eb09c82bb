package ports

import (
	"context"
	"time"
)

// SyncStateRepository persists the small pieces of cross-call state the
// system keeps outside the domain aggregates: the per-kind last-sync
// timestamp that throttles external refreshes, and free-form system
// settings such as the daily captured target value.
type SyncStateRepository interface {
	// GetLastSync returns when a sync kind last completed, or nil when it
	// has never run.
	GetLastSync(ctx context.Context, kind string) (*time.Time, error)

	// SetLastSync records the completion time of a sync kind, inserting or
	// updating the single row for that kind.
	SetLastSync(ctx context.Context, kind string, at time.Time) error

	// GetSetting returns a system setting value, or a not-found error.
	GetSetting(ctx context.Context, key string) (string, error)

	// SetSetting upserts a system setting.
	SetSetting(ctx context.Context, key, value, description string) error
}
