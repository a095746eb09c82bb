package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgres_adapter "github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres/auditrepo"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres/costrecordrepo"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres/orderrepo"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres/packagetyperepo"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres/syncstaterepo"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
	"github.com/GhostBC/SistemaLogistica/internal/core/ports"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&packagetyperepo.PackageTypeDTO{},
		&costrecordrepo.CostRecordDTO{},
		&auditrepo.AuditEntryDTO{},
		&syncstaterepo.SyncStateDTO{},
		&syncstaterepo.SystemSettingDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_line_items, package_types, cost_records, audit_entries, sync_states, system_settings").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// TestUnitOfWorkFactory_Create verifies the factory creates isolated
// instances that each expose all five repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.PackageTypeRepository())
	suite.NotNil(uow1.CostRecordRepository())
	suite.NotNil(uow1.AuditRepository())
	suite.NotNil(uow1.SyncStateRepository())
	suite.NotNil(uow2.OrderRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit and rollback,
// including the no-op double begin and the invalid-transaction errors.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_CommitPersistsAcrossRepositories verifies that a finalize
// shaped transaction (order + stock + cost record) lands atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	box, err := packaging.NewPackageType(kernel.NewUUID(), "caixa P",
		kernel.MoneyFromFloat(2.00),
		packaging.Dimensions{HeightCm: 10, WidthCm: 20, LengthCm: 30}, 10)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.PackageTypeRepository().Add(ctx, box))

	testOrder, err := order.NewOrder(kernel.NewUUID(), "1001", "shopee",
		kernel.MoneyFromFloat(12.00), time.Now(), order.Details{})
	suite.Require().NoError(err)
	item, err := order.NewLineItem(box.ID(), 1)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.Finalize([]order.LineItem{item}, time.Now()))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	record, err := costing.NewCostRecord("1001",
		kernel.MoneyFromFloat(12.00), kernel.MoneyFromFloat(2.00),
		kernel.MoneyFromFloat(12.00), nil, "fixed_table", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CostRecordRepository().Upsert(ctx, record))

	suite.Require().NoError(uow.Commit(ctx))

	// read through a fresh unit of work outside any transaction
	verify := suite.factory.Create()
	persisted, err := verify.OrderRepository().Get(ctx, "1001")
	suite.Require().NoError(err)
	suite.Equal(order.Finalized, persisted.Status())

	persistedRecord, err := verify.CostRecordRepository().Get(ctx, "1001")
	suite.Require().NoError(err)
	suite.Equal("14.00", persistedRecord.TotalCost().String())
}

// TestUnitOfWork_RollbackDiscardsAllChanges verifies no partial state leaks
// when the transaction rolls back.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsAllChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	testOrder, err := order.NewOrder(kernel.NewUUID(), "1001", "shopee",
		kernel.MoneyFromFloat(12.00), time.Now(), order.Details{})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	record, err := costing.NewCostRecord("1001",
		kernel.MoneyFromFloat(12.00), kernel.MoneyFromFloat(2.00),
		kernel.MoneyFromFloat(12.00), nil, "fixed_table", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CostRecordRepository().Upsert(ctx, record))

	suite.Require().NoError(uow.Rollback(ctx))

	var orderCount, recordCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&costrecordrepo.CostRecordDTO{}).Count(&recordCount).Error)
	suite.Equal(int64(0), orderCount)
	suite.Equal(int64(0), recordCount)
}

// TestUnitOfWork_GetForUpdateSerializesConcurrentReservations verifies that
// the row lock forces the second reservation attempt to see the first one.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GetForUpdateSerializesConcurrentReservations() {
	ctx := context.Background()

	setup := suite.factory.Create()
	testOrder, err := order.NewOrder(kernel.NewUUID(), "1001", "shopee",
		kernel.MoneyFromFloat(12.00), time.Now(), order.Details{})
	suite.Require().NoError(err)
	suite.Require().NoError(setup.OrderRepository().Add(ctx, testOrder))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	locked, err := first.OrderRepository().GetForUpdate(ctx, "1001")
	suite.Require().NoError(err)

	operatorA := kernel.NewUUID()
	suite.Require().NoError(locked.Reserve(operatorA, time.Now()))
	suite.Require().NoError(first.OrderRepository().Update(ctx, locked))

	// the competing transaction blocks on the lock until the first commits
	done := make(chan error, 1)
	go func() {
		second := suite.factory.Create()
		if err := second.Begin(ctx); err != nil {
			done <- err
			return
		}
		defer second.Rollback(ctx)

		contested, err := second.OrderRepository().GetForUpdate(ctx, "1001")
		if err != nil {
			done <- err
			return
		}
		done <- contested.Reserve(kernel.NewUUID(), time.Now())
	}()

	time.Sleep(100 * time.Millisecond)
	suite.Require().NoError(first.Commit(ctx))

	select {
	case err := <-done:
		suite.Require().Error(err, "second reservation should conflict with the committed holder")
		suite.Contains(err.Error(), operatorA.String())
	case <-time.After(5 * time.Second):
		suite.Fail("competing transaction did not finish")
	}
}

// TestUnitOfWork_GetByIDsForUpdateSerializesStockDebits verifies that two
// transactions debiting the same package type serialize on its row lock, so
// neither debit overwrites the other.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GetByIDsForUpdateSerializesStockDebits() {
	ctx := context.Background()

	setup := suite.factory.Create()
	box, err := packaging.NewPackageType(kernel.NewUUID(), "caixa P",
		kernel.MoneyFromFloat(2.00),
		packaging.Dimensions{HeightCm: 10, WidthCm: 20, LengthCm: 30}, 10)
	suite.Require().NoError(err)
	suite.Require().NoError(setup.PackageTypeRepository().Add(ctx, box))

	debit := func(uow ports.UnitOfWork, quantity int) error {
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer uow.Rollback(ctx)

		repo := uow.PackageTypeRepository()
		types, err := repo.GetByIDsForUpdate(ctx, []kernel.UUID{box.ID()})
		if err != nil {
			return err
		}
		locked := types[box.ID().String()]
		if _, err = locked.Debit(quantity); err != nil {
			return err
		}
		if err = repo.Update(ctx, locked); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	types, err := first.PackageTypeRepository().GetByIDsForUpdate(ctx, []kernel.UUID{box.ID()})
	suite.Require().NoError(err)
	locked := types[box.ID().String()]
	_, err = locked.Debit(2)
	suite.Require().NoError(err)
	suite.Require().NoError(first.PackageTypeRepository().Update(ctx, locked))

	// the competing debit blocks on the row lock until the first commits
	done := make(chan error, 1)
	go func() {
		done <- debit(suite.factory.Create(), 3)
	}()

	time.Sleep(100 * time.Millisecond)
	suite.Require().NoError(first.Commit(ctx))

	select {
	case err := <-done:
		suite.Require().NoError(err)
	case <-time.After(5 * time.Second):
		suite.Fail("competing debit did not finish")
	}

	verify := suite.factory.Create()
	persisted, err := verify.PackageTypeRepository().Get(ctx, box.ID())
	suite.Require().NoError(err)
	suite.Equal(5, persisted.Stock(), "both debits must land: 10 - 2 - 3")
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
