package auditrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres/auditrepo"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/audit"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
)

// AuditRepositoryIntegrationTestSuite provides integration tests for the
// audit log repository against a PostgreSQL container.
type AuditRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *auditrepo.GormAuditRepository
}

func (suite *AuditRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&auditrepo.AuditEntryDTO{}))
}

func (suite *AuditRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE audit_entries").Error)
	suite.repository = auditrepo.NewGormAuditRepository(suite.db)
}

func (suite *AuditRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AuditRepositoryIntegrationTestSuite) TestAdd_And_GetByOrderNumber_OldestFirst() {
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	older := suite.createEntry("1001", "finalize", base)
	newer := suite.createEntry("1001", "edit", base.Add(time.Minute))
	other := suite.createEntry("2002", "finalize", base)

	// insert newest first to prove the ordering comes from the query
	suite.Require().NoError(suite.repository.Add(ctx, newer))
	suite.Require().NoError(suite.repository.Add(ctx, older))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	entries, err := suite.repository.GetByOrderNumber(ctx, "1001")
	suite.Require().NoError(err)

	suite.Require().Len(entries, 2)
	suite.Equal("finalize", entries[0].Action())
	suite.Equal("edit", entries[1].Action())
	suite.Equal("operador", entries[0].Actor())
	suite.Equal("order", entries[0].Resource())
	suite.Equal(`{"status":"Open"}`, entries[0].Before())
	suite.Equal(`{"status":"Finalized"}`, entries[0].After())
}

func (suite *AuditRepositoryIntegrationTestSuite) TestGetByOrderNumber_NoEntries_ReturnsEmpty() {
	ctx := context.Background()

	entries, err := suite.repository.GetByOrderNumber(ctx, "9999")
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *AuditRepositoryIntegrationTestSuite) TestDeleteByOrderNumber_RemovesOnlyThatOrder() {
	ctx := context.Background()

	base := time.Now()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createEntry("1001", "finalize", base)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createEntry("1001", "edit", base)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createEntry("2002", "finalize", base)))

	suite.Require().NoError(suite.repository.DeleteByOrderNumber(ctx, "1001"))

	deleted, err := suite.repository.GetByOrderNumber(ctx, "1001")
	suite.Require().NoError(err)
	suite.Empty(deleted)

	kept, err := suite.repository.GetByOrderNumber(ctx, "2002")
	suite.Require().NoError(err)
	suite.Len(kept, 1)
}

// createEntry builds a valid audit entry for testing.
func (suite *AuditRepositoryIntegrationTestSuite) createEntry(orderNumber, action string, at time.Time) *audit.Entry {
	entry, err := audit.NewEntry(kernel.NewUUID(), "operador", action, "order",
		orderNumber, `{"status":"Open"}`, `{"status":"Finalized"}`, at)
	suite.Require().NoError(err)
	return entry
}

func TestAuditRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuditRepositoryIntegrationTestSuite))
}
