// Package marketplace implements the marketplace cost port with a static
// per-channel table. Channels without a configured amount resolve to absence,
// which the cost record tags with the marketplace source anyway.
package marketplace

import (
	"context"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
)

// StaticProvider answers marketplace cost lookups from a fixed table keyed
// by channel code. Implements ports.MarketplaceCostProvider.
//
// The marketplaces this system reconciles against expose no per-order cost
// API, so the table holds negotiated flat amounts; an empty table makes
// every lookup a miss.
type StaticProvider struct {
	costs map[string]kernel.Money
}

// NewStaticProvider creates a provider over a copy of the given table.
func NewStaticProvider(costs map[string]kernel.Money) StaticProvider {
	table := make(map[string]kernel.Money, len(costs))
	for channel, amount := range costs {
		table[channel] = amount
	}
	return StaticProvider{costs: table}
}

// MarketplaceCost returns the configured amount for the order's channel.
func (p StaticProvider) MarketplaceCost(_ context.Context, _, channel string) (kernel.Money, bool, error) {
	amount, ok := p.costs[channel]
	if !ok {
		return kernel.ZeroMoney(), false, nil
	}
	return amount, true, nil
}
