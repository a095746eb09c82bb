package services_test

import (
	"testing"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/services"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalculator() services.CostCalculator {
	return services.NewCostCalculator(costing.DefaultChannelPolicies())
}

func newPackageType(t *testing.T, name string, unitCost float64, stock int) *packaging.PackageType {
	t.Helper()
	pt, err := packaging.NewPackageType(kernel.NewUUID(), name,
		kernel.MoneyFromFloat(unitCost),
		packaging.Dimensions{HeightCm: 10, WidthCm: 10, LengthCm: 10}, stock)
	require.NoError(t, err)
	return pt
}

func newTestOrder(t *testing.T, channel string, freight float64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "1001", channel,
		kernel.MoneyFromFloat(freight), time.Now(), order.Details{})
	require.NoError(t, err)
	return o
}

func typesByID(pts ...*packaging.PackageType) map[string]*packaging.PackageType {
	m := make(map[string]*packaging.PackageType, len(pts))
	for _, pt := range pts {
		m[pt.ID().String()] = pt
	}
	return m
}

func TestCostCalculatorPackagingCost(t *testing.T) {
	calc := newCalculator()

	t.Run("sums rounded terms", func(t *testing.T) {
		box := newPackageType(t, "Box-S", 1.00, 10)
		mailer := newPackageType(t, "Mailer", 0.45, 10)

		boxItem, err := order.NewLineItem(box.ID(), 2)
		require.NoError(t, err)
		mailerItem, err := order.NewLineItem(mailer.ID(), 3)
		require.NoError(t, err)

		total, err := calc.PackagingCost(
			[]order.LineItem{boxItem, mailerItem}, typesByID(box, mailer))

		require.NoError(t, err)
		assert.Equal(t, "3.35", total.String())
	})

	t.Run("missing package type names the offending id", func(t *testing.T) {
		missing := kernel.NewUUID()
		item, err := order.NewLineItem(missing, 1)
		require.NoError(t, err)

		_, err = calc.PackagingCost([]order.LineItem{item}, nil)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, missing.String(), notFound.ID)
	})

	t.Run("empty list costs nothing", func(t *testing.T) {
		total, err := calc.PackagingCost(nil, nil)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestCostCalculatorCalculate(t *testing.T) {
	calc := newCalculator()

	t.Run("shopee order with fixed table cost", func(t *testing.T) {
		// Box-S at 1.00, qty 2, freight 12.00, fixed shopee cost 12.00:
		// packaging 2.00, total 14.00, gain -2.00, margin -14.29.
		box := newPackageType(t, "Box-S", 1.00, 10)
		o := newTestOrder(t, "shopee", 12.00)
		item, err := order.NewLineItem(box.ID(), 2)
		require.NoError(t, err)

		record, err := calc.Calculate(o, []order.LineItem{item}, typesByID(box),
			services.CarrierEstimate{
				Amount: kernel.MoneyFromFloat(12.00),
				Source: string(costing.SourceFixedTable),
			}, nil, time.Now())

		require.NoError(t, err)
		assert.Equal(t, "2.00", record.PackagingCost().String())
		assert.Equal(t, "14.00", record.TotalCost().String())
		assert.Equal(t, "-2.00", record.GainLoss().String())
		assert.Equal(t, "-14.29", record.MarginPct().StringFixed(2))
		assert.Equal(t, string(costing.SourceFixedTable), record.CostSource())
	})

	t.Run("zero freight forces zero estimate", func(t *testing.T) {
		box := newPackageType(t, "Box-S", 1.00, 10)
		o := newTestOrder(t, "shopee", 0)
		item, err := order.NewLineItem(box.ID(), 1)
		require.NoError(t, err)

		record, err := calc.Calculate(o, []order.LineItem{item}, typesByID(box),
			services.CarrierEstimate{
				Amount: kernel.MoneyFromFloat(12.00),
				Source: string(costing.SourceFixedTable),
			}, nil, time.Now())

		require.NoError(t, err)
		assert.True(t, record.EstimatedCarrierCost().IsZero())
		assert.Equal(t, "1.00", record.TotalCost().String())
		assert.Equal(t, "shopee", record.CostSource(),
			"zero-freight orders carry the channel key as their source tag")
	})

	t.Run("actual cost flows through", func(t *testing.T) {
		box := newPackageType(t, "Box-S", 1.00, 10)
		o := newTestOrder(t, "tray", 30.00)
		item, err := order.NewLineItem(box.ID(), 1)
		require.NoError(t, err)
		actual := kernel.MoneyFromFloat(18.00)

		record, err := calc.Calculate(o, []order.LineItem{item}, typesByID(box),
			services.CarrierEstimate{
				Amount: kernel.ZeroMoney(),
				Source: string(costing.SourceMarketplace),
			}, &actual, time.Now())

		require.NoError(t, err)
		assert.Equal(t, "19.00", record.TotalCost().String())
		assert.Equal(t, "11.00", record.GainLoss().String())
	})

	t.Run("missing package type wraps as cost computation error", func(t *testing.T) {
		o := newTestOrder(t, "shopee", 12.00)
		item, err := order.NewLineItem(kernel.NewUUID(), 1)
		require.NoError(t, err)

		_, err = calc.Calculate(o, []order.LineItem{item}, nil,
			services.CarrierEstimate{}, nil, time.Now())

		require.ErrorIs(t, err, errs.ErrCostComputation)
	})

	t.Run("is idempotent for unchanged inputs", func(t *testing.T) {
		box := newPackageType(t, "Box-S", 1.00, 10)
		o := newTestOrder(t, "shopee", 12.00)
		item, err := order.NewLineItem(box.ID(), 2)
		require.NoError(t, err)
		at := time.Now()
		estimate := services.CarrierEstimate{
			Amount: kernel.MoneyFromFloat(12.00),
			Source: string(costing.SourceFixedTable),
		}

		first, err := calc.Calculate(o, []order.LineItem{item}, typesByID(box), estimate, nil, at)
		require.NoError(t, err)
		second, err := calc.Calculate(o, []order.LineItem{item}, typesByID(box), estimate, nil, at)
		require.NoError(t, err)

		assert.True(t, first.TotalCost().Equal(second.TotalCost()))
		assert.True(t, first.GainLoss().Equal(second.GainLoss()))
		assert.True(t, first.MarginPct().Equal(second.MarginPct()))
	})
}

func TestCostCalculatorValidateActualCostRequirement(t *testing.T) {
	calc := newCalculator()
	actual := kernel.MoneyFromFloat(10.00)

	t.Run("tray requires actual cost", func(t *testing.T) {
		err := calc.ValidateActualCostRequirement("tray", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		require.NoError(t, calc.ValidateActualCostRequirement("tray", &actual))
	})

	t.Run("other channels do not", func(t *testing.T) {
		require.NoError(t, calc.ValidateActualCostRequirement("shopee", nil))
		require.NoError(t, calc.ValidateActualCostRequirement("site", nil))
	})
}

func TestCostCalculatorNeedsCarrierEstimate(t *testing.T) {
	calc := newCalculator()

	assert.True(t, calc.NeedsCarrierEstimate(newTestOrder(t, "site", 12.00)))
	assert.False(t, calc.NeedsCarrierEstimate(newTestOrder(t, "site", 0)))
}
