package queries

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

const maxReportSpanDays = 90

// TotalsSummary aggregates the reconciled outcome of a set of finalized
// orders. Every sum adds terms already rounded to 2 decimals; gains and
// losses accumulate separately so a profitable day is not hidden by one bad
// shipment.
type TotalsSummary struct {
	OrderCount           int
	TotalCost            kernel.Money
	TotalCustomerFreight kernel.Money
	TotalCarrierCost     kernel.Money
	GainTotal            kernel.Money
	LossTotal            kernel.Money
	MarginAvg            decimal.Decimal
}

// PackagingUsageResponse is one package type's consumption within a report
// period.
type PackagingUsageResponse struct {
	PackageTypeID kernel.UUID
	Name          string
	Quantity      int
	UnitCost      kernel.Money
	Value         kernel.Money
}

// costRow pairs an order's channel and finalize time with its reconciled
// cost record, rebuilt through the domain constructor so the derived figures
// always follow the current math.
type costRow struct {
	channel     string
	finalizedAt time.Time
	record      *costing.CostRecord
}

// fetchCostRows loads the cost records of orders finalized in [start, end).
func fetchCostRows(ctx context.Context, db *gorm.DB, start, end time.Time) ([]costRow, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			o.channel,
			o.finalized_at,
			cr.order_number,
			cr.customer_freight,
			cr.packaging_cost,
			cr.estimated_carrier_cost,
			cr.actual_carrier_cost,
			cr.cost_source,
			cr.computed_at
		FROM cost_records cr
		JOIN orders o ON o.order_number = cr.order_number
		WHERE o.status = 'Finalized'
		  AND o.finalized_at >= ? AND o.finalized_at < ?
	`, start, end).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]costRow, 0)
	for rows.Next() {
		var row costRow
		var orderNumber, costSource string
		var freight, packaging, estimated decimal.Decimal
		var actual *decimal.Decimal
		var computedAt time.Time

		err = rows.Scan(
			&row.channel,
			&row.finalizedAt,
			&orderNumber,
			&freight,
			&packaging,
			&estimated,
			&actual,
			&costSource,
			&computedAt,
		)
		if err != nil {
			return nil, err
		}

		var actualMoney *kernel.Money
		if actual != nil {
			m := kernel.MoneyFromDecimal(*actual)
			actualMoney = &m
		}

		record, recordErr := costing.RestoreCostRecord(orderNumber,
			kernel.MoneyFromDecimal(freight),
			kernel.MoneyFromDecimal(packaging),
			kernel.MoneyFromDecimal(estimated),
			actualMoney, costSource, computedAt)
		if recordErr != nil {
			return nil, recordErr
		}
		row.record = record

		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// packagingRow is one line item of a finalized order joined with its catalog
// entry.
type packagingRow struct {
	channel     string
	finalizedAt time.Time
	typeID      kernel.UUID
	name        string
	unitCost    kernel.Money
	quantity    int
}

// fetchPackagingRows loads the line items of orders finalized in [start, end).
func fetchPackagingRows(ctx context.Context, db *gorm.DB, start, end time.Time) ([]packagingRow, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			o.channel,
			o.finalized_at,
			pt.id,
			pt.name,
			pt.unit_cost,
			li.quantity
		FROM order_line_items li
		JOIN orders o ON o.id = li.order_id
		JOIN package_types pt ON pt.id = li.package_type_id
		WHERE o.status = 'Finalized'
		  AND o.finalized_at >= ? AND o.finalized_at < ?
	`, start, end).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]packagingRow, 0)
	for rows.Next() {
		var row packagingRow
		var id uuid.UUID
		var unitCost decimal.Decimal

		err = rows.Scan(
			&row.channel,
			&row.finalizedAt,
			&id,
			&row.name,
			&unitCost,
			&row.quantity,
		)
		if err != nil {
			return nil, err
		}

		typeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.typeID = typeID
		row.unitCost = kernel.MoneyFromDecimal(unitCost)

		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// summarize folds cost rows into a TotalsSummary.
func summarize(rows []costRow) TotalsSummary {
	summary := TotalsSummary{
		TotalCost:            kernel.ZeroMoney(),
		TotalCustomerFreight: kernel.ZeroMoney(),
		TotalCarrierCost:     kernel.ZeroMoney(),
		GainTotal:            kernel.ZeroMoney(),
		LossTotal:            kernel.ZeroMoney(),
		MarginAvg:            decimal.Zero,
	}

	marginSum := decimal.Zero
	for _, row := range rows {
		record := row.record
		summary.OrderCount++
		summary.TotalCost = summary.TotalCost.Add(record.TotalCost())
		summary.TotalCustomerFreight = summary.TotalCustomerFreight.Add(record.CustomerFreight())
		summary.TotalCarrierCost = summary.TotalCarrierCost.Add(record.EffectiveCarrierCost())

		gainLoss := record.GainLoss()
		if gainLoss.IsNegative() {
			summary.LossTotal = summary.LossTotal.Add(gainLoss.Abs())
		} else {
			summary.GainTotal = summary.GainTotal.Add(gainLoss)
		}

		marginSum = marginSum.Add(record.MarginPct())
	}

	if summary.OrderCount > 0 {
		summary.MarginAvg = marginSum.
			Div(decimal.NewFromInt(int64(summary.OrderCount))).
			Round(2)
	}

	return summary
}

// packagingUsage folds packaging rows into per-type usage, sorted by name.
func packagingUsage(rows []packagingRow) []PackagingUsageResponse {
	byID := make(map[string]*PackagingUsageResponse)
	for _, row := range rows {
		usage, ok := byID[row.typeID.String()]
		if !ok {
			usage = &PackagingUsageResponse{
				PackageTypeID: row.typeID,
				Name:          row.name,
				UnitCost:      row.unitCost,
				Value:         kernel.ZeroMoney(),
			}
			byID[row.typeID.String()] = usage
		}
		usage.Quantity += row.quantity
		usage.Value = usage.Value.Add(row.unitCost.MulInt(row.quantity))
	}

	result := make([]PackagingUsageResponse, 0, len(byID))
	for _, usage := range byID {
		result = append(result, *usage)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// validateReportPeriod enforces the shared range rules of the period and
// channel reports: end must not precede start, and the span is capped.
func validateReportPeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errs.NewValueIsRequiredError("period")
	}
	if end.Before(start) {
		return errs.NewValueIsInvalidError("period (end precedes start)")
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxReportSpanDays {
		return errs.NewValueIsOutOfRangeError("periodDays", days, 1, maxReportSpanDays)
	}
	return nil
}
