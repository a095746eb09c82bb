package commands

import (
	"context"
	"log/slog"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/costing"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/services"
	"github.com/GhostBC/SistemaLogistica/internal/core/ports"
)

// CarrierCostResolver performs the three-way carrier-cost dispatch before a
// fulfillment transaction opens: carrier quotes for the site channel, the
// fixed per-channel table, or the marketplace cost provider for everything
// else.
//
// Resolution never fails the caller. A provider error or a missing quote
// resolves to a zero amount carrying the source tag that was consulted, so
// the cost record still documents where the estimate came from. Failures
// are logged and finalize proceeds.
type CarrierCostResolver struct {
	policies    *costing.ChannelPolicies
	quotes      ports.CarrierQuoteProvider
	marketplace ports.MarketplaceCostProvider
	log         *slog.Logger
}

// NewCarrierCostResolver creates a resolver over the injected policy table
// and providers.
func NewCarrierCostResolver(
	policies *costing.ChannelPolicies,
	quotes ports.CarrierQuoteProvider,
	marketplace ports.MarketplaceCostProvider,
	log *slog.Logger,
) CarrierCostResolver {
	return CarrierCostResolver{
		policies:    policies,
		quotes:      quotes,
		marketplace: marketplace,
		log:         log.With(slog.String("component", "carrier_cost_resolver")),
	}
}

// Resolve returns the carrier-cost estimate for an order. Must be called
// outside any datastore transaction: the providers block on network I/O.
func (r CarrierCostResolver) Resolve(ctx context.Context, o *order.Order) services.CarrierEstimate {
	policy := r.policies.PolicyFor(o.Channel())

	switch policy.Source {
	case costing.SourceFixedTable:
		return services.CarrierEstimate{
			Amount: policy.FixedCost,
			Source: string(costing.SourceFixedTable),
		}

	case costing.SourceCarrierQuote:
		amount, found, err := r.quotes.QuoteCost(ctx, o.ExternalRef())
		if err != nil {
			r.log.Warn("carrier quote lookup failed, recording zero estimate",
				slog.String("order_number", o.OrderNumber()),
				slog.String("error", err.Error()))
			amount, found = kernel.ZeroMoney(), false
		}
		if !found {
			amount = kernel.ZeroMoney()
		}
		return services.CarrierEstimate{
			Amount: amount,
			Source: string(costing.SourceCarrierQuote),
		}

	default:
		amount, found, err := r.marketplace.MarketplaceCost(ctx, o.OrderNumber(), o.Channel())
		if err != nil {
			r.log.Warn("marketplace cost lookup failed, recording zero estimate",
				slog.String("order_number", o.OrderNumber()),
				slog.String("channel", o.Channel()),
				slog.String("error", err.Error()))
			amount, found = kernel.ZeroMoney(), false
		}
		if !found {
			amount = kernel.ZeroMoney()
		}
		return services.CarrierEstimate{
			Amount: amount,
			Source: string(costing.SourceMarketplace),
		}
	}
}
