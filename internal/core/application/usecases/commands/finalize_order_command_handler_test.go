package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/application/usecases/commands"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/audit"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/services"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFinalizeHandler(f *fulfillmentFixture) commands.FinalizeOrderCommandHandler {
	policies := costing.DefaultChannelPolicies()
	resolver := commands.NewCarrierCostResolver(policies, f.quotes, f.market, discardLogger())
	return commands.NewFinalizeOrderCommandHandler(
		f.factory, resolver, services.NewCostCalculator(policies), discardLogger())
}

func TestFinalizeOrderCommandHandler_FixedTableChannel(t *testing.T) {
	ctx := context.Background()
	f := newFulfillmentFixture()

	aggregate := mustOpenOrder(t, "1001", "shopee", 12.00)
	operatorID := kernel.NewUUID()
	require.NoError(t, aggregate.Reserve(operatorID, time.Now()))

	box := mustPackageType(t, "caixa P", 2.00, 10)

	f.orders.On("Get", mock.Anything, "1001").Return(aggregate, nil)
	f.orders.On("GetForUpdate", mock.Anything, "1001").Return(aggregate, nil)
	f.orders.On("Update", mock.Anything, aggregate).Return(nil)
	f.packages.On("GetByIDsForUpdate", mock.Anything, mock.Anything).Return(typesByID(box), nil)
	f.packages.On("Update", mock.Anything, box).Return(nil)

	var record *costing.CostRecord
	f.costs.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		record = args.Get(1).(*costing.CostRecord)
	}).Return(nil)

	var entry *audit.Entry
	f.audits.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		entry = args.Get(1).(*audit.Entry)
	}).Return(nil)
	f.expectCommit()

	handler := newFinalizeHandler(f)
	cmd, err := commands.NewFinalizeOrderCommand("1001", "maria",
		[]commands.LineItemInput{{PackageTypeID: box.ID(), Quantity: 1}}, "", nil)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, record)
	assert.Equal(t, "2.00", record.PackagingCost().String())
	assert.Equal(t, "12.00", record.EstimatedCarrierCost().String())
	assert.Equal(t, "fixed_table", record.CostSource())
	assert.Equal(t, "14.00", record.TotalCost().String())
	assert.Equal(t, "-2.00", record.GainLoss().String())
	assert.Equal(t, "-14.29", record.MarginPct().String())
	assert.Nil(t, record.ActualCarrierCost())

	assert.Equal(t, 9, box.Stock())
	assert.Equal(t, order.Finalized, aggregate.Status())
	assert.False(t, aggregate.IsReserved())
	assert.NotNil(t, aggregate.FinalizedAt())

	require.NotNil(t, entry)
	assert.Equal(t, "maria", entry.Actor())
	assert.Equal(t, "finalize", entry.Action())
	assert.Equal(t, "order", entry.Resource())
	assert.Equal(t, "1001", entry.OrderNumber())
	assert.Contains(t, entry.Before(), `"status":"Open"`)
	assert.Contains(t, entry.After(), `"status":"Finalized"`)
	assert.Contains(t, entry.After(), box.ID().String())

	// fixed-table channels never reach a provider
	f.quotes.AssertNotCalled(t, "QuoteCost", mock.Anything, mock.Anything)
	f.market.AssertNotCalled(t, "MarketplaceCost", mock.Anything, mock.Anything, mock.Anything)
	f.uow.AssertCalled(t, "Commit", mock.Anything)
}

func TestFinalizeOrderCommandHandler_CarrierQuoteChannel(t *testing.T) {
	ctx := context.Background()
	f := newFulfillmentFixture()

	aggregate := mustOpenOrder(t, "2002", "site", 25.00)
	box := mustPackageType(t, "caixa M", 3.50, 5)

	f.orders.On("Get", mock.Anything, "2002").Return(aggregate, nil)
	f.orders.On("GetForUpdate", mock.Anything, "2002").Return(aggregate, nil)
	f.orders.On("Update", mock.Anything, aggregate).Return(nil)
	f.packages.On("GetByIDsForUpdate", mock.Anything, mock.Anything).Return(typesByID(box), nil)
	f.packages.On("Update", mock.Anything, box).Return(nil)
	f.quotes.On("QuoteCost", mock.Anything, aggregate.ExternalRef()).
		Return(kernel.MoneyFromFloat(9.37), true, nil)

	var record *costing.CostRecord
	f.costs.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		record = args.Get(1).(*costing.CostRecord)
	}).Return(nil)
	f.audits.On("Add", mock.Anything, mock.Anything).Return(nil)
	f.expectCommit()

	handler := newFinalizeHandler(f)
	cmd, err := commands.NewFinalizeOrderCommand("2002", "joao",
		[]commands.LineItemInput{{PackageTypeID: box.ID(), Quantity: 2}}, "", nil)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, record)
	assert.Equal(t, "7.00", record.PackagingCost().String())
	assert.Equal(t, "9.37", record.EstimatedCarrierCost().String())
	assert.Equal(t, "carrier_quote", record.CostSource())
	assert.Equal(t, "16.37", record.TotalCost().String())
	assert.Equal(t, "8.63", record.GainLoss().String())
	assert.Equal(t, 3, box.Stock())
}

func TestFinalizeOrderCommandHandler_ZeroFreightSkipsProviders(t *testing.T) {
	ctx := context.Background()
	f := newFulfillmentFixture()

	aggregate := mustOpenOrder(t, "3003", "site", 0)
	box := mustPackageType(t, "envelope", 2.00, 8)

	f.orders.On("Get", mock.Anything, "3003").Return(aggregate, nil)
	f.orders.On("GetForUpdate", mock.Anything, "3003").Return(aggregate, nil)
	f.orders.On("Update", mock.Anything, aggregate).Return(nil)
	f.packages.On("GetByIDsForUpdate", mock.Anything, mock.Anything).Return(typesByID(box), nil)
	f.packages.On("Update", mock.Anything, box).Return(nil)

	var record *costing.CostRecord
	f.costs.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		record = args.Get(1).(*costing.CostRecord)
	}).Return(nil)
	f.audits.On("Add", mock.Anything, mock.Anything).Return(nil)
	f.expectCommit()

	handler := newFinalizeHandler(f)
	cmd, err := commands.NewFinalizeOrderCommand("3003", "maria",
		[]commands.LineItemInput{{PackageTypeID: box.ID(), Quantity: 1}}, "", nil)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, record)
	assert.Equal(t, "0.00", record.EstimatedCarrierCost().String())
	assert.Equal(t, "site", record.CostSource())
	assert.Equal(t, "2.00", record.TotalCost().String())
	assert.Equal(t, "-2.00", record.GainLoss().String())
	assert.Equal(t, "-100", record.MarginPct().String())

	f.quotes.AssertNotCalled(t, "QuoteCost", mock.Anything, mock.Anything)
}

func TestFinalizeOrderCommandHandler_RequiresActualCost(t *testing.T) {
	ctx := context.Background()
	f := newFulfillmentFixture()

	aggregate := mustOpenOrder(t, "4004", "tray", 18.50)
	f.orders.On("Get", mock.Anything, "4004").Return(aggregate, nil)
	f.orders.On("GetForUpdate", mock.Anything, "4004").Return(aggregate, nil)
	f.market.On("MarketplaceCost", mock.Anything, "4004", "tray").
		Return(kernel.ZeroMoney(), false, nil)

	handler := newFinalizeHandler(f)
	cmd, err := commands.NewFinalizeOrderCommand("4004", "maria",
		[]commands.LineItemInput{{PackageTypeID: kernel.NewUUID(), Quantity: 1}}, "", nil)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.Equal(t, order.Open, aggregate.Status())
	f.packages.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.costs.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	f.audits.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestFinalizeOrderCommandHandler_ActualCostSatisfiesRequirement(t *testing.T) {
	ctx := context.Background()
	f := newFulfillmentFixture()

	aggregate := mustOpenOrder(t, "4005", "tray", 30.00)
	box := mustPackageType(t, "caixa G", 4.00, 6)

	f.orders.On("Get", mock.Anything, "4005").Return(aggregate, nil)
	f.orders.On("GetForUpdate", mock.Anything, "4005").Return(aggregate, nil)
	f.orders.On("Update", mock.Anything, aggregate).Return(nil)
	f.packages.On("GetByIDsForUpdate", mock.Anything, mock.Anything).Return(typesByID(box), nil)
	f.packages.On("Update", mock.Anything, box).Return(nil)
	f.market.On("MarketplaceCost", mock.Anything, "4005", "tray").
		Return(kernel.ZeroMoney(), false, nil)

	var record *costing.CostRecord
	f.costs.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		record = args.Get(1).(*costing.CostRecord)
	}).Return(nil)
	f.audits.On("Add", mock.Anything, mock.Anything).Return(nil)
	f.expectCommit()

	actual := kernel.MoneyFromFloat(17.00)
	handler := newFinalizeHandler(f)
	cmd, err := commands.NewFinalizeOrderCommand("4005", "maria",
		[]commands.LineItemInput{{PackageTypeID: box.ID(), Quantity: 1}}, "", &actual)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, record)
	require.NotNil(t, record.ActualCarrierCost())
	assert.Equal(t, "17.00", record.ActualCarrierCost().String())
	assert.Equal(t, "17.00", record.EffectiveCarrierCost().String())
	assert.Equal(t, "marketplace", record.CostSource())
	assert.Equal(t, "21.00", record.TotalCost().String())
	assert.Equal(t, "9.00", record.GainLoss().String())
}

func TestFinalizeOrderCommandHandler_PersistsOperatorNotes(t *testing.T) {
	ctx := context.Background()
	f := newFulfillmentFixture()

	aggregate := mustOpenOrder(t, "9001", "shopee", 12.00)
	box := mustPackageType(t, "caixa P", 2.00, 10)

	f.orders.On("Get", mock.Anything, "9001").Return(aggregate, nil)
	f.orders.On("GetForUpdate", mock.Anything, "9001").Return(aggregate, nil)
	f.orders.On("Update", mock.Anything, aggregate).Return(nil)
	f.packages.On("GetByIDsForUpdate", mock.Anything, mock.Anything).Return(typesByID(box), nil)
	f.packages.On("Update", mock.Anything, box).Return(nil)
	f.costs.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	var entry *audit.Entry
	f.audits.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		entry = args.Get(1).(*audit.Entry)
	}).Return(nil)
	f.expectCommit()

	handler := newFinalizeHandler(f)
	cmd, err := commands.NewFinalizeOrderCommand("9001", "maria",
		[]commands.LineItemInput{{PackageTypeID: box.ID(), Quantity: 1}},
		"cliente pediu embalagem reforçada", nil)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, "cliente pediu embalagem reforçada", aggregate.Notes())

	require.NotNil(t, entry)
	assert.Contains(t, entry.After(), "cliente pediu embalagem reforçada")
}

func TestFinalizeOrderCommandHandler_StockMayGoNegative(t *testing.T) {
	ctx := context.Background()
	f := newFulfillmentFixture()

	aggregate := mustOpenOrder(t, "5005", "shopee", 12.00)
	box := mustPackageType(t, "caixa P", 2.00, 1)

	f.orders.On("Get", mock.Anything, "5005").Return(aggregate, nil)
	f.orders.On("GetForUpdate", mock.Anything, "5005").Return(aggregate, nil)
	f.orders.On("Update", mock.Anything, aggregate).Return(nil)
	f.packages.On("GetByIDsForUpdate", mock.Anything, mock.Anything).Return(typesByID(box), nil)
	f.packages.On("Update", mock.Anything, box).Return(nil)
	f.costs.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.audits.On("Add", mock.Anything, mock.Anything).Return(nil)
	f.expectCommit()

	handler := newFinalizeHandler(f)
	cmd, err := commands.NewFinalizeOrderCommand("5005", "maria",
		[]commands.LineItemInput{{PackageTypeID: box.ID(), Quantity: 3}}, "", nil)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, -2, box.Stock())
	assert.Equal(t, order.Finalized, aggregate.Status())
}

func TestFinalizeOrderCommandHandler_RejectsDeactivatedPackageType(t *testing.T) {
	ctx := context.Background()
	f := newFulfillmentFixture()

	aggregate := mustOpenOrder(t, "6006", "shopee", 12.00)
	box := mustPackageType(t, "caixa extinta", 2.00, 10)
	box.Deactivate()

	f.orders.On("Get", mock.Anything, "6006").Return(aggregate, nil)
	f.orders.On("GetForUpdate", mock.Anything, "6006").Return(aggregate, nil)
	f.packages.On("GetByIDsForUpdate", mock.Anything, mock.Anything).Return(typesByID(box), nil)

	handler := newFinalizeHandler(f)
	cmd, err := commands.NewFinalizeOrderCommand("6006", "maria",
		[]commands.LineItemInput{{PackageTypeID: box.ID(), Quantity: 1}}, "", nil)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Equal(t, 10, box.Stock())
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestFinalizeOrderCommandHandler_RejectsUnconstructedCommand(t *testing.T) {
	f := newFulfillmentFixture()
	handler := newFinalizeHandler(f)

	err := handler.Handle(context.Background(), commands.FinalizeOrderCommand{})
	require.ErrorIs(t, err, commands.ErrFinalizeOrderCommandIsNotConstructed)
}

func TestNewFinalizeOrderCommand_Validation(t *testing.T) {
	negative := kernel.MoneyFromFloat(-1.00)

	tests := []struct {
		name        string
		orderNumber string
		actor       string
		items       []commands.LineItemInput
		actual      *kernel.Money
		wantErr     error
	}{
		{"empty order number", "", "maria",
			[]commands.LineItemInput{{PackageTypeID: kernel.NewUUID(), Quantity: 1}}, nil, errs.ErrValueIsRequired},
		{"empty actor", "1001", "",
			[]commands.LineItemInput{{PackageTypeID: kernel.NewUUID(), Quantity: 1}}, nil, errs.ErrValueIsRequired},
		{"no items", "1001", "maria", nil, nil, errs.ErrValueIsRequired},
		{"zero quantity", "1001", "maria",
			[]commands.LineItemInput{{PackageTypeID: kernel.NewUUID(), Quantity: 0}}, nil, errs.ErrValueIsInvalid},
		{"negative actual cost", "1001", "maria",
			[]commands.LineItemInput{{PackageTypeID: kernel.NewUUID(), Quantity: 1}}, &negative, errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewFinalizeOrderCommand(tt.orderNumber, tt.actor, tt.items, "", tt.actual)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
