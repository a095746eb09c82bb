package commands_test

import (
	"context"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/application/usecases/commands"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/audit"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
	"github.com/GhostBC/SistemaLogistica/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByExternalRef(ctx context.Context, externalRef string) (*order.Order, error) {
	args := m.Called(ctx, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingCode(ctx context.Context, trackingCode string) (*order.Order, error) {
	args := m.Called(ctx, trackingCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOpenOrderNumbers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, orderNumber string) error {
	args := m.Called(ctx, orderNumber)
	return args.Error(0)
}

type MockPackageTypeRepository struct{ mock.Mock }

func (m *MockPackageTypeRepository) Add(ctx context.Context, pt *packaging.PackageType) error {
	args := m.Called(ctx, pt)
	return args.Error(0)
}

func (m *MockPackageTypeRepository) Update(ctx context.Context, pt *packaging.PackageType) error {
	args := m.Called(ctx, pt)
	return args.Error(0)
}

func (m *MockPackageTypeRepository) Get(ctx context.Context, id kernel.UUID) (*packaging.PackageType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packaging.PackageType), args.Error(1)
}

func (m *MockPackageTypeRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*packaging.PackageType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packaging.PackageType), args.Error(1)
}

func (m *MockPackageTypeRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) (map[string]*packaging.PackageType, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*packaging.PackageType), args.Error(1)
}

func (m *MockPackageTypeRepository) GetByIDsForUpdate(ctx context.Context, ids []kernel.UUID) (map[string]*packaging.PackageType, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*packaging.PackageType), args.Error(1)
}

func (m *MockPackageTypeRepository) GetByName(ctx context.Context, name string) (*packaging.PackageType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packaging.PackageType), args.Error(1)
}

func (m *MockPackageTypeRepository) GetAll(ctx context.Context, activeOnly bool) ([]*packaging.PackageType, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*packaging.PackageType), args.Error(1)
}

type MockCostRecordRepository struct{ mock.Mock }

func (m *MockCostRecordRepository) Upsert(ctx context.Context, record *costing.CostRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCostRecordRepository) Get(ctx context.Context, orderNumber string) (*costing.CostRecord, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*costing.CostRecord), args.Error(1)
}

func (m *MockCostRecordRepository) Delete(ctx context.Context, orderNumber string) error {
	args := m.Called(ctx, orderNumber)
	return args.Error(0)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Add(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) GetByOrderNumber(ctx context.Context, orderNumber string) ([]*audit.Entry, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

func (m *MockAuditRepository) DeleteByOrderNumber(ctx context.Context, orderNumber string) error {
	args := m.Called(ctx, orderNumber)
	return args.Error(0)
}

type MockSyncStateRepository struct{ mock.Mock }

func (m *MockSyncStateRepository) GetLastSync(ctx context.Context, kind string) (*time.Time, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockSyncStateRepository) SetLastSync(ctx context.Context, kind string, at time.Time) error {
	args := m.Called(ctx, kind, at)
	return args.Error(0)
}

func (m *MockSyncStateRepository) GetSetting(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSyncStateRepository) SetSetting(ctx context.Context, key, value, description string) error {
	args := m.Called(ctx, key, value, description)
	return args.Error(0)
}

// mockTx implements TxManager for all UoW mocks.
type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderUoW struct{ mockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCatalogUoW struct{ mockTx }

func (m *MockCatalogUoW) PackageTypeRepository() ports.PackageTypeRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageTypeRepository)
}

type MockCatalogUoWFactory struct{ mock.Mock }

func (m *MockCatalogUoWFactory) Create() commands.CatalogUoW {
	args := m.Called()
	return args.Get(0).(commands.CatalogUoW)
}

type MockFulfillmentUoW struct{ mockTx }

func (m *MockFulfillmentUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockFulfillmentUoW) PackageTypeRepository() ports.PackageTypeRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageTypeRepository)
}

func (m *MockFulfillmentUoW) CostRecordRepository() ports.CostRecordRepository {
	args := m.Called()
	return args.Get(0).(ports.CostRecordRepository)
}

func (m *MockFulfillmentUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockCostUoW struct{ mockTx }

func (m *MockCostUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockCostUoW) CostRecordRepository() ports.CostRecordRepository {
	args := m.Called()
	return args.Get(0).(ports.CostRecordRepository)
}

type MockCostUoWFactory struct{ mock.Mock }

func (m *MockCostUoWFactory) Create() commands.CostUoW {
	args := m.Called()
	return args.Get(0).(commands.CostUoW)
}

type MockSyncUoW struct{ mockTx }

func (m *MockSyncUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockSyncUoW) SyncStateRepository() ports.SyncStateRepository {
	args := m.Called()
	return args.Get(0).(ports.SyncStateRepository)
}

type MockSyncUoWFactory struct{ mock.Mock }

func (m *MockSyncUoWFactory) Create() commands.SyncUoW {
	args := m.Called()
	return args.Get(0).(commands.SyncUoW)
}

type MockOrderFeed struct{ mock.Mock }

func (m *MockOrderFeed) FetchOpenOrders(ctx context.Context, page int) ([]ports.OpenOrderSummary, bool, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]ports.OpenOrderSummary), args.Bool(1), args.Error(2)
}

func (m *MockOrderFeed) FetchOrderDetail(ctx context.Context, externalID string) (ports.OrderDetail, error) {
	args := m.Called(ctx, externalID)
	return args.Get(0).(ports.OrderDetail), args.Error(1)
}

type MockCarrierQuoteProvider struct{ mock.Mock }

func (m *MockCarrierQuoteProvider) QuoteCost(ctx context.Context, externalRef string) (kernel.Money, bool, error) {
	args := m.Called(ctx, externalRef)
	return args.Get(0).(kernel.Money), args.Bool(1), args.Error(2)
}

type MockMarketplaceCostProvider struct{ mock.Mock }

func (m *MockMarketplaceCostProvider) MarketplaceCost(ctx context.Context, orderNumber, channel string) (kernel.Money, bool, error) {
	args := m.Called(ctx, orderNumber, channel)
	return args.Get(0).(kernel.Money), args.Bool(1), args.Error(2)
}
