package costing_test

import (
	"testing"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCostRecord(t *testing.T, freight, packaging, estimated float64) *costing.CostRecord {
	t.Helper()
	cr, err := costing.NewCostRecord(
		"1001",
		kernel.MoneyFromFloat(freight),
		kernel.MoneyFromFloat(packaging),
		kernel.MoneyFromFloat(estimated),
		nil,
		string(costing.SourceFixedTable),
		time.Now(),
	)
	require.NoError(t, err)
	return cr
}

func TestNewCostRecord(t *testing.T) {
	t.Run("derives totals from inputs", func(t *testing.T) {
		// Box at 1.00 x2 on a shopee order with 12.00 freight and the
		// 12.00 fixed-table carrier cost.
		cr := mustCostRecord(t, 12.00, 2.00, 12.00)

		assert.Equal(t, "14.00", cr.TotalCost().String())
		assert.Equal(t, "-2.00", cr.GainLoss().String())
		assert.Equal(t, "-14.29", cr.MarginPct().StringFixed(2))
	})

	t.Run("margin is zero when total cost is not positive", func(t *testing.T) {
		cr := mustCostRecord(t, 10.00, 0, 0)

		assert.True(t, cr.TotalCost().IsZero())
		assert.Equal(t, "10.00", cr.GainLoss().String())
		assert.True(t, cr.MarginPct().IsZero())
	})

	t.Run("requires order number and source", func(t *testing.T) {
		_, err := costing.NewCostRecord("", kernel.ZeroMoney(), kernel.ZeroMoney(),
			kernel.ZeroMoney(), nil, "fixed_table", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = costing.NewCostRecord("1001", kernel.ZeroMoney(), kernel.ZeroMoney(),
			kernel.ZeroMoney(), nil, "", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects negative inputs", func(t *testing.T) {
		neg := kernel.MoneyFromFloat(-1)

		_, err := costing.NewCostRecord("1001", neg, kernel.ZeroMoney(),
			kernel.ZeroMoney(), nil, "fixed_table", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = costing.NewCostRecord("1001", kernel.ZeroMoney(), kernel.ZeroMoney(),
			kernel.ZeroMoney(), &neg, "fixed_table", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cr costing.CostRecord
		require.ErrorIs(t, cr.Validate(), costing.ErrCostRecordIsNotConstructed)
	})
}

func TestCostRecordEffectiveCarrierCost(t *testing.T) {
	t.Run("estimate when no actual cost", func(t *testing.T) {
		cr := mustCostRecord(t, 20.00, 2.00, 11.00)
		assert.Equal(t, "11.00", cr.EffectiveCarrierCost().String())
	})

	t.Run("actual cost overrides estimate", func(t *testing.T) {
		actual := kernel.MoneyFromFloat(9.50)
		cr, err := costing.NewCostRecord("1001",
			kernel.MoneyFromFloat(20.00), kernel.MoneyFromFloat(2.00),
			kernel.MoneyFromFloat(11.00), &actual,
			string(costing.SourceCarrierQuote), time.Now())
		require.NoError(t, err)

		assert.Equal(t, "9.50", cr.EffectiveCarrierCost().String())
		assert.Equal(t, "11.50", cr.TotalCost().String())
		assert.Equal(t, "8.50", cr.GainLoss().String())
	})
}

func TestCostRecordApplyActualCost(t *testing.T) {
	t.Run("re-derives totals", func(t *testing.T) {
		cr := mustCostRecord(t, 12.00, 2.00, 12.00)
		at := time.Now()

		require.NoError(t, cr.ApplyActualCost(kernel.MoneyFromFloat(8.00), at))

		require.NotNil(t, cr.ActualCarrierCost())
		assert.Equal(t, "10.00", cr.TotalCost().String())
		assert.Equal(t, "2.00", cr.GainLoss().String())
		assert.Equal(t, "20.00", cr.MarginPct().StringFixed(2))
		assert.Equal(t, at, cr.ComputedAt())
	})

	t.Run("rejects negative actual cost", func(t *testing.T) {
		cr := mustCostRecord(t, 12.00, 2.00, 12.00)
		err := cr.ApplyActualCost(kernel.MoneyFromFloat(-1), time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, cr.ActualCarrierCost())
	})
}

func TestCostRecordReconciliationIsIdempotent(t *testing.T) {
	build := func() *costing.CostRecord {
		return mustCostRecord(t, 12.00, 2.00, 12.00)
	}

	first, second := build(), build()
	assert.True(t, first.TotalCost().Equal(second.TotalCost()))
	assert.True(t, first.GainLoss().Equal(second.GainLoss()))
	assert.True(t, first.MarginPct().Equal(second.MarginPct()))
}

func TestRestoreCostRecord(t *testing.T) {
	actual := kernel.MoneyFromFloat(9.00)
	cr, err := costing.RestoreCostRecord("1001",
		kernel.MoneyFromFloat(15.00), kernel.MoneyFromFloat(1.50),
		kernel.MoneyFromFloat(10.00), &actual,
		string(costing.SourceMarketplace), time.Now())

	require.NoError(t, err)
	require.NoError(t, cr.Validate())
	// derived fields come from the stored inputs, not the persisted row
	assert.Equal(t, "10.50", cr.TotalCost().String())
	assert.Equal(t, "4.50", cr.GainLoss().String())
}
