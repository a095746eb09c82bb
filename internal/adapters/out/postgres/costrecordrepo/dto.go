// Package costrecordrepo persists the per-order cost reconciliation records.
package costrecordrepo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
)

// CostRecordDTO represents the database structure for persisting cost
// records, keyed 1:1 by order number. The derived columns (total, gain/loss,
// margin) are stored for reporting queries but recomputed on restore.
type CostRecordDTO struct {
	OrderNumber          string          `gorm:"primaryKey"`
	CustomerFreight      decimal.Decimal `gorm:"type:numeric(12,2)"`
	PackagingCost        decimal.Decimal `gorm:"type:numeric(12,2)"`
	EstimatedCarrierCost decimal.Decimal `gorm:"type:numeric(12,2)"`
	ActualCarrierCost    *decimal.Decimal `gorm:"type:numeric(12,2)"`
	CostSource           string          `gorm:"not null"`
	TotalCost            decimal.Decimal `gorm:"type:numeric(12,2)"`
	GainLoss             decimal.Decimal `gorm:"type:numeric(12,2)"`
	MarginPct            decimal.Decimal `gorm:"type:numeric(8,2)"`
	ComputedAt           time.Time
}

// TableName overrides GORM's default naming convention.
func (CostRecordDTO) TableName() string {
	return "cost_records"
}

// fromDomain converts a cost record to its database representation.
func fromDomain(record *costing.CostRecord) CostRecordDTO {
	var actual *decimal.Decimal
	if cost := record.ActualCarrierCost(); cost != nil {
		d := cost.Decimal()
		actual = &d
	}

	return CostRecordDTO{
		OrderNumber:          record.OrderNumber(),
		CustomerFreight:      record.CustomerFreight().Decimal(),
		PackagingCost:        record.PackagingCost().Decimal(),
		EstimatedCarrierCost: record.EstimatedCarrierCost().Decimal(),
		ActualCarrierCost:    actual,
		CostSource:           record.CostSource(),
		TotalCost:            record.TotalCost().Decimal(),
		GainLoss:             record.GainLoss().Decimal(),
		MarginPct:            record.MarginPct(),
		ComputedAt:           record.ComputedAt(),
	}
}

// toDomain converts a database DTO to a cost record, re-deriving the totals.
func toDomain(dto CostRecordDTO) (*costing.CostRecord, error) {
	var actual *kernel.Money
	if dto.ActualCarrierCost != nil {
		m := kernel.MoneyFromDecimal(*dto.ActualCarrierCost)
		actual = &m
	}

	return costing.RestoreCostRecord(
		dto.OrderNumber,
		kernel.MoneyFromDecimal(dto.CustomerFreight),
		kernel.MoneyFromDecimal(dto.PackagingCost),
		kernel.MoneyFromDecimal(dto.EstimatedCarrierCost),
		actual,
		dto.CostSource,
		dto.ComputedAt,
	)
}
