// Package auditrepo persists the append-only audit log.
package auditrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/audit"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
)

// AuditEntryDTO represents the database structure for persisting audit
// entries. The before/after columns hold JSON snapshots as opaque text.
type AuditEntryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Actor       string    `gorm:"not null"`
	Action      string    `gorm:"not null"`
	Resource    string    `gorm:"not null"`
	OrderNumber string    `gorm:"index;not null"`
	BeforeState string    `gorm:"type:text"`
	AfterState  string    `gorm:"type:text"`
	OccurredAt  time.Time
}

// TableName overrides GORM's default naming convention.
func (AuditEntryDTO) TableName() string {
	return "audit_entries"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *audit.Entry) AuditEntryDTO {
	return AuditEntryDTO{
		ID:          entry.ID().Bytes(),
		Actor:       entry.Actor(),
		Action:      entry.Action(),
		Resource:    entry.Resource(),
		OrderNumber: entry.OrderNumber(),
		BeforeState: entry.Before(),
		AfterState:  entry.After(),
		OccurredAt:  entry.OccurredAt(),
	}
}

// toDomain converts a database DTO to an audit entry.
func toDomain(dto AuditEntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return audit.RestoreEntry(id, dto.Actor, dto.Action, dto.Resource,
		dto.OrderNumber, dto.BeforeState, dto.AfterState, dto.OccurredAt)
}
