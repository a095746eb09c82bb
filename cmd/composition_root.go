package cmd

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	httpin "github.com/GhostBC/SistemaLogistica/internal/adapters/in/http"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/bling"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/mandae"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/marketplace"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres"
	"github.com/GhostBC/SistemaLogistica/internal/core/application/usecases/commands"
	"github.com/GhostBC/SistemaLogistica/internal/core/application/usecases/queries"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/services"
	"github.com/GhostBC/SistemaLogistica/internal/core/ports"
	"github.com/GhostBC/SistemaLogistica/internal/jobs"
)

const (
	// syncThrottle is the minimum interval between non-forced feed syncs.
	syncThrottle = 30 * time.Minute

	// feedPageDelay separates consecutive feed page fetches to respect the
	// provider's rate limits.
	feedPageDelay = 5 * time.Second

	// trackingFetchDelay separates detail fetches during a tracking sweep.
	trackingFetchDelay = 2 * time.Second
)

// CompositionRoot wires adapters, domain services and use-case handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	policies   *costing.ChannelPolicies
	feed       ports.OrderFeed
	resolver   commands.CarrierCostResolver
	calculator services.CostCalculator
	webhooks   mandae.WebhookValidator
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph from the loaded configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	policies := costing.DefaultChannelPolicies()

	feed := bling.NewClient(config.BlingAPIBase, config.BlingAccessToken)
	quotes := mandae.NewClient(config.MandaeAPIBase, config.MandaeAPIToken)
	marketplaceCosts := marketplace.NewStaticProvider(nil)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		policies:   policies,
		feed:       feed,
		resolver:   commands.NewCarrierCostResolver(policies, quotes, marketplaceCosts, logger),
		calculator: services.NewCostCalculator(policies),
		webhooks:   mandae.NewWebhookValidator(config.MandaeWebhookSecret),
		logger:     logger,
	}
}

// WebhookValidator exposes the carrier webhook signature check for callers
// that terminate webhook traffic in front of this service.
func (c *CompositionRoot) WebhookValidator() mandae.WebhookValidator {
	return c.webhooks
}

// UnitOfWorkFactory exposes the broad factory for callers that need every
// repository, such as the daily target job.
func (c *CompositionRoot) UnitOfWorkFactory() ports.UnitOfWorkFactory {
	return c.uowFactory
}

// NewHTTPServer builds the HTTP server over all use-case handlers.
func (c *CompositionRoot) NewHTTPServer() *httpin.Server {
	return httpin.NewServer(
		httpin.CommandHandlers{
			SyncOrders:            c.CreateSyncOrdersCommandHandler(),
			CreateOrder:           c.CreateCreateOrderCommandHandler(),
			UpdateOrder:           c.CreateUpdateOrderCommandHandler(),
			DeleteOrder:           c.CreateDeleteOrderCommandHandler(),
			ReserveOrder:          c.CreateReserveOrderCommandHandler(),
			ReleaseOrder:          c.CreateReleaseOrderCommandHandler(),
			FinalizeOrder:         c.CreateFinalizeOrderCommandHandler(),
			EditFinalizedOrder:    c.CreateEditFinalizedOrderCommandHandler(),
			RefreshTracking:       c.CreateRefreshTrackingCommandHandler(),
			ApplyActualCost:       c.CreateApplyActualCostCommandHandler(),
			CreatePackageType:     c.CreateCreatePackageTypeCommandHandler(),
			UpdatePackageType:     c.CreateUpdatePackageTypeCommandHandler(),
			DeactivatePackageType: c.CreateDeactivatePackageTypeCommandHandler(),
		},
		httpin.QueryHandlers{
			ListOrders:       queries.NewListOrdersQueryHandler(c.gormDB),
			ListPackageTypes: queries.NewListPackageTypesQueryHandler(c.gormDB),
			GetPackageType:   queries.NewGetPackageTypeQueryHandler(c.gormDB),
			DailyTotals:      queries.NewDailyTotalsQueryHandler(c.gormDB),
			PeriodTotals:     queries.NewPeriodTotalsQueryHandler(c.gormDB),
			ChannelTotals:    queries.NewChannelTotalsQueryHandler(c.gormDB),
		},
	)
}

// NewJobManager builds the background job manager.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSyncOrdersCommandHandler(), c.uowFactory, c.logger)
}

func (c *CompositionRoot) CreateSyncOrdersCommandHandler() commands.SyncOrdersCommandHandler {
	var f commands.SyncUoWFactory = FuncSyncUoWFactory(func() commands.SyncUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSyncOrdersCommandHandler(f, c.feed, c.policies, syncThrottle, feedPageDelay, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateReserveOrderCommandHandler() commands.ReserveOrderCommandHandler {
	return commands.NewReserveOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateReleaseOrderCommandHandler() commands.ReleaseOrderCommandHandler {
	return commands.NewReleaseOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateFinalizeOrderCommandHandler() commands.FinalizeOrderCommandHandler {
	return commands.NewFinalizeOrderCommandHandler(
		c.fulfillmentUoWFactory(), c.resolver, c.calculator, c.logger)
}

func (c *CompositionRoot) CreateEditFinalizedOrderCommandHandler() commands.EditFinalizedOrderCommandHandler {
	return commands.NewEditFinalizedOrderCommandHandler(
		c.fulfillmentUoWFactory(), c.resolver, c.calculator, c.logger)
}

func (c *CompositionRoot) CreateRefreshTrackingCommandHandler() commands.RefreshTrackingCommandHandler {
	return commands.NewRefreshTrackingCommandHandler(
		c.orderUoWFactory(), c.feed, trackingFetchDelay, c.logger)
}

func (c *CompositionRoot) CreateApplyActualCostCommandHandler() commands.ApplyActualCostCommandHandler {
	var f commands.CostUoWFactory = FuncCostUoWFactory(func() commands.CostUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyActualCostCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateCreatePackageTypeCommandHandler() commands.CreatePackageTypeCommandHandler {
	return commands.NewCreatePackageTypeCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateUpdatePackageTypeCommandHandler() commands.UpdatePackageTypeCommandHandler {
	return commands.NewUpdatePackageTypeCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateDeactivatePackageTypeCommandHandler() commands.DeactivatePackageTypeCommandHandler {
	return commands.NewDeactivatePackageTypeCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncCostUoWFactory func() commands.CostUoW

func (f FuncCostUoWFactory) Create() commands.CostUoW {
	return f()
}

type FuncSyncUoWFactory func() commands.SyncUoW

func (f FuncSyncUoWFactory) Create() commands.SyncUoW {
	return f()
}
