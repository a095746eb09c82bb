package services

import (
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// CarrierEstimate is the carrier-cost estimate resolved for an order before
// reconciliation, together with the tag of the rule or provider that
// produced it. A provider that returned no data yields a zero amount with
// its tag kept, so the record still says where we looked.
type CarrierEstimate struct {
	Amount kernel.Money
	Source string
}

// CostCalculator is the domain service implementing the cost reconciliation
// math. It is pure: callers resolve carrier quotes and load package types
// first, then the calculator turns those inputs into a CostRecord.
//
// Policies drive one decision here: which channels must supply a real
// carrier cost at finalize time. The three-way estimate dispatch itself
// involves provider I/O and lives in the application layer.
type CostCalculator struct {
	policies *costing.ChannelPolicies
}

// NewCostCalculator creates a CostCalculator with the injected channel
// policy table.
func NewCostCalculator(policies *costing.ChannelPolicies) CostCalculator {
	return CostCalculator{policies: policies}
}

// PackagingCost sums unit cost times quantity over the line items, rounding
// each term to 2 decimals before accumulating. Every referenced package type
// must be present in types (keyed by ID string); a missing one fails with a
// not-found error naming the offending ID. Deactivated types still resolve:
// historical cost lookups outlive the catalog entry's active flag.
func (c CostCalculator) PackagingCost(
	items []order.LineItem,
	types map[string]*packaging.PackageType,
) (kernel.Money, error) {
	total := kernel.ZeroMoney()

	for _, item := range items {
		pt, ok := types[item.PackageTypeID().String()]
		if !ok {
			return kernel.ZeroMoney(), errs.NewObjectNotFoundError(
				"packageTypeID", item.PackageTypeID().String())
		}
		total = total.Add(pt.UnitCost().MulInt(item.Quantity()))
	}

	return total, nil
}

// ValidateActualCostRequirement enforces the per-channel real-cost policy:
// channels flagged RequiresActualCost must supply a non-negative actual
// carrier cost when finalizing.
func (c CostCalculator) ValidateActualCostRequirement(channel string, actual *kernel.Money) error {
	if !c.policies.RequiresActualCost(channel) {
		return nil
	}
	if actual == nil {
		return errs.NewValueIsRequiredError(
			"actualCarrierCost (channel " + channel + " has no cost estimate source)")
	}
	return nil
}

// NeedsCarrierEstimate reports whether an order warrants an external
// carrier-cost lookup. A customer who paid no freight contributes no
// freight-cost line, so zero-freight orders skip the provider round-trip.
func (c CostCalculator) NeedsCarrierEstimate(o *order.Order) bool {
	return o.CustomerFreight().IsPositive()
}

// Calculate produces the CostRecord for an order from its line items, the
// loaded package types, the resolved carrier estimate and the optional
// actual carrier cost.
//
// When the customer paid no freight the estimate is forced to zero and the
// source tag becomes the channel key itself, regardless of what the caller
// resolved. The result is idempotent: unchanged inputs produce an identical
// record.
func (c CostCalculator) Calculate(
	o *order.Order,
	items []order.LineItem,
	types map[string]*packaging.PackageType,
	estimate CarrierEstimate,
	actual *kernel.Money,
	at time.Time,
) (*costing.CostRecord, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	packagingCost, err := c.PackagingCost(items, types)
	if err != nil {
		return nil, errs.NewCostComputationError(o.OrderNumber(), err)
	}

	if !c.NeedsCarrierEstimate(o) {
		estimate = CarrierEstimate{
			Amount: kernel.ZeroMoney(),
			Source: o.Channel(),
		}
	}

	record, err := costing.NewCostRecord(
		o.OrderNumber(),
		o.CustomerFreight(),
		packagingCost,
		estimate.Amount,
		actual,
		estimate.Source,
		at,
	)
	if err != nil {
		return nil, errs.NewCostComputationError(o.OrderNumber(), err)
	}

	return record, nil
}
