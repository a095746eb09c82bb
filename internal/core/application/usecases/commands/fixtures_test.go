package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustOpenOrder(t *testing.T, orderNumber, channel string, freight float64) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), orderNumber, channel,
		kernel.MoneyFromFloat(freight), time.Now(), order.Details{ExternalRef: "ext-" + orderNumber})
	require.NoError(t, err)
	return o
}

func mustFinalizedOrder(t *testing.T, orderNumber, channel string, freight float64, items []order.LineItem) *order.Order {
	t.Helper()

	o := mustOpenOrder(t, orderNumber, channel, freight)
	require.NoError(t, o.Finalize(items, time.Now()))
	return o
}

func mustPackageType(t *testing.T, name string, unitCost float64, stock int) *packaging.PackageType {
	t.Helper()

	pt, err := packaging.NewPackageType(kernel.NewUUID(), name,
		kernel.MoneyFromFloat(unitCost),
		packaging.Dimensions{HeightCm: 10, WidthCm: 20, LengthCm: 30}, stock)
	require.NoError(t, err)
	return pt
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()

	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func mustLineItem(t *testing.T, packageTypeID kernel.UUID, quantity int) order.LineItem {
	t.Helper()

	item, err := order.NewLineItem(packageTypeID, quantity)
	require.NoError(t, err)
	return item
}

func typesByID(types ...*packaging.PackageType) map[string]*packaging.PackageType {
	byID := make(map[string]*packaging.PackageType, len(types))
	for _, pt := range types {
		byID[pt.ID().String()] = pt
	}
	return byID
}

// fulfillmentFixture wires the mocks shared by the finalize and edit handler
// tests. Begin/Rollback and repository getters always succeed; Commit is
// registered per test so failure paths can assert it never ran.
type fulfillmentFixture struct {
	factory  *MockFulfillmentUoWFactory
	uow      *MockFulfillmentUoW
	orders   *MockOrderRepository
	packages *MockPackageTypeRepository
	costs    *MockCostRecordRepository
	audits   *MockAuditRepository
	quotes   *MockCarrierQuoteProvider
	market   *MockMarketplaceCostProvider
}

func newFulfillmentFixture() *fulfillmentFixture {
	f := &fulfillmentFixture{
		factory:  &MockFulfillmentUoWFactory{},
		uow:      &MockFulfillmentUoW{},
		orders:   &MockOrderRepository{},
		packages: &MockPackageTypeRepository{},
		costs:    &MockCostRecordRepository{},
		audits:   &MockAuditRepository{},
		quotes:   &MockCarrierQuoteProvider{},
		market:   &MockMarketplaceCostProvider{},
	}

	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.On("OrderRepository").Return(f.orders)
	f.uow.On("PackageTypeRepository").Return(f.packages)
	f.uow.On("CostRecordRepository").Return(f.costs)
	f.uow.On("AuditRepository").Return(f.audits)
	return f
}

func (f *fulfillmentFixture) expectCommit() {
	f.uow.On("Commit", mock.Anything).Return(nil)
}

// orderFixture wires the mocks for handlers that only touch orders.
type orderFixture struct {
	factory *MockOrderUoWFactory
	uow     *MockOrderUoW
	orders  *MockOrderRepository
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		factory: &MockOrderUoWFactory{},
		uow:     &MockOrderUoW{},
		orders:  &MockOrderRepository{},
	}

	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.On("OrderRepository").Return(f.orders)
	return f
}

func (f *orderFixture) expectCommit() {
	f.uow.On("Commit", mock.Anything).Return(nil)
}
