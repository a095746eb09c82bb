package costing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var (
	// ErrCostRecordIsNotConstructed is returned when a CostRecord instance
	// was not created through NewCostRecord or RestoreCostRecord.
	ErrCostRecordIsNotConstructed = errors.New(
		"CostRecord must be created via NewCostRecord or RestoreCostRecord constructor")
)

// CostRecord is the reconciled financial outcome of one order's shipment.
//
// The stored inputs are customer freight, packaging cost, the estimated
// carrier cost (with its source tag) and the optional actual carrier cost.
// Everything else is derived:
//
//	effective carrier cost = actual if present, else estimated
//	total_cost  = effective carrier cost + packaging cost
//	gain_loss   = customer freight - total_cost
//	margin_pct  = gain_loss / total_cost * 100  (0 when total_cost <= 0)
//
// Each figure is rounded to 2 decimals before the next step uses it.
type CostRecord struct {
	orderNumber          string
	customerFreight      kernel.Money
	packagingCost        kernel.Money
	estimatedCarrierCost kernel.Money
	actualCarrierCost    *kernel.Money
	costSource           string

	totalCost kernel.Money
	gainLoss  kernel.Money
	marginPct decimal.Decimal

	computedAt time.Time

	guard guard.ConstructorGuard
}

// NewCostRecord builds a cost record from the reconciliation inputs and
// derives the totals. actualCarrierCost is nil until a real cost arrives
// through the webhook, the batch feed or a manual edit.
func NewCostRecord(
	orderNumber string,
	customerFreight kernel.Money,
	packagingCost kernel.Money,
	estimatedCarrierCost kernel.Money,
	actualCarrierCost *kernel.Money,
	costSource string,
	computedAt time.Time,
) (*CostRecord, error) {
	cr := &CostRecord{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cr.setOrderNumber(orderNumber),
		cr.setCustomerFreight(customerFreight),
		cr.setPackagingCost(packagingCost),
		cr.setEstimatedCarrierCost(estimatedCarrierCost),
		cr.setActualCarrierCost(actualCarrierCost),
		cr.setCostSource(costSource),
	); err != nil {
		return nil, err
	}

	cr.computedAt = computedAt
	cr.derive()
	return cr, nil
}

// RestoreCostRecord reconstructs a CostRecord from persistent storage.
// The derived figures are recomputed rather than trusted, so a row written
// by an older version of the math comes back consistent.
func RestoreCostRecord(
	orderNumber string,
	customerFreight kernel.Money,
	packagingCost kernel.Money,
	estimatedCarrierCost kernel.Money,
	actualCarrierCost *kernel.Money,
	costSource string,
	computedAt time.Time,
) (*CostRecord, error) {
	return NewCostRecord(orderNumber, customerFreight, packagingCost,
		estimatedCarrierCost, actualCarrierCost, costSource, computedAt)
}

// Validate ensures the CostRecord was properly constructed.
func (cr *CostRecord) Validate() error {
	if cr == nil {
		return ErrCostRecordIsNotConstructed
	}
	return cr.guard.Validate(ErrCostRecordIsNotConstructed)
}

// OrderNumber returns the order this record belongs to (1:1).
func (cr *CostRecord) OrderNumber() string {
	return cr.orderNumber
}

// CustomerFreight returns the freight amount the customer paid.
func (cr *CostRecord) CustomerFreight() kernel.Money {
	return cr.customerFreight
}

// PackagingCost returns the summed packaging material cost.
func (cr *CostRecord) PackagingCost() kernel.Money {
	return cr.packagingCost
}

// EstimatedCarrierCost returns the provider- or table-sourced estimate.
func (cr *CostRecord) EstimatedCarrierCost() kernel.Money {
	return cr.estimatedCarrierCost
}

// ActualCarrierCost returns the authoritative carrier cost, nil until known.
func (cr *CostRecord) ActualCarrierCost() *kernel.Money {
	return cr.actualCarrierCost
}

// CostSource returns the tag of the rule or provider that produced the
// estimate (e.g. "fixed_table", "carrier_quote").
func (cr *CostRecord) CostSource() string {
	return cr.costSource
}

// EffectiveCarrierCost returns the actual cost when present, else the
// estimate.
func (cr *CostRecord) EffectiveCarrierCost() kernel.Money {
	if cr.actualCarrierCost != nil {
		return *cr.actualCarrierCost
	}
	return cr.estimatedCarrierCost
}

// TotalCost returns effective carrier cost plus packaging cost.
func (cr *CostRecord) TotalCost() kernel.Money {
	return cr.totalCost
}

// GainLoss returns customer freight minus total cost. Negative means the
// shipment lost money.
func (cr *CostRecord) GainLoss() kernel.Money {
	return cr.gainLoss
}

// MarginPct returns gain/loss as a percentage of total cost, rounded to 2
// decimals. Zero when total cost is not positive.
func (cr *CostRecord) MarginPct() decimal.Decimal {
	return cr.marginPct
}

// ComputedAt returns when the record was last reconciled.
func (cr *CostRecord) ComputedAt() time.Time {
	return cr.computedAt
}

// ApplyActualCost records the authoritative carrier cost and re-derives the
// totals. The cost must not be negative.
func (cr *CostRecord) ApplyActualCost(actual kernel.Money, at time.Time) error {
	if actual.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("actualCarrierCost",
			fmt.Errorf("%s is negative", actual))
	}

	cr.actualCarrierCost = &actual
	cr.computedAt = at
	cr.derive()
	return nil
}

// derive recomputes total cost, gain/loss and margin from the stored inputs.
func (cr *CostRecord) derive() {
	cr.totalCost = cr.EffectiveCarrierCost().Add(cr.packagingCost)
	cr.gainLoss = cr.customerFreight.Sub(cr.totalCost)

	if cr.totalCost.IsPositive() {
		cr.marginPct = cr.gainLoss.Decimal().
			Div(cr.totalCost.Decimal()).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	} else {
		cr.marginPct = decimal.Zero
	}
}

func (cr *CostRecord) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	cr.orderNumber = orderNumber
	return nil
}

func (cr *CostRecord) setCustomerFreight(freight kernel.Money) error {
	if freight.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("customerFreight",
			fmt.Errorf("%s is negative", freight))
	}
	cr.customerFreight = freight
	return nil
}

func (cr *CostRecord) setPackagingCost(cost kernel.Money) error {
	if cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("packagingCost",
			fmt.Errorf("%s is negative", cost))
	}
	cr.packagingCost = cost
	return nil
}

func (cr *CostRecord) setEstimatedCarrierCost(cost kernel.Money) error {
	if cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("estimatedCarrierCost",
			fmt.Errorf("%s is negative", cost))
	}
	cr.estimatedCarrierCost = cost
	return nil
}

func (cr *CostRecord) setActualCarrierCost(cost *kernel.Money) error {
	if cost != nil && cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("actualCarrierCost",
			fmt.Errorf("%s is negative", *cost))
	}
	cr.actualCarrierCost = cost
	return nil
}

func (cr *CostRecord) setCostSource(source string) error {
	if source == "" {
		return errs.NewValueIsRequiredError("costSource")
	}
	cr.costSource = source
	return nil
}
