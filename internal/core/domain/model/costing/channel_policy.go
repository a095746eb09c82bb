package costing

import (
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
)

// CostSourceKind identifies where a channel's carrier-cost estimate comes
// from. The kind also doubles as the cost_source tag persisted on the
// CostRecord.
type CostSourceKind string

const (
	// SourceCarrierQuote asks the carrier-quote provider for a per-shipment
	// quote keyed by the order's external reference.
	SourceCarrierQuote CostSourceKind = "carrier_quote"

	// SourceFixedTable reads a flat per-channel amount from the policy table.
	SourceFixedTable CostSourceKind = "fixed_table"

	// SourceMarketplace asks the marketplace cost provider, which knows the
	// freight the marketplace charged the store for this order.
	SourceMarketplace CostSourceKind = "marketplace"
)

// ChannelPolicy describes how one sales channel is costed and displayed.
type ChannelPolicy struct {
	// Key is the channel code as it appears on orders (e.g. "shopee").
	Key string

	// DisplayName is the human-readable channel name for reports.
	DisplayName string

	// Source selects the carrier-cost estimate source.
	Source CostSourceKind

	// FixedCost is the flat amount used when Source is SourceFixedTable.
	FixedCost kernel.Money

	// RequiresActualCost forces the caller to supply a real carrier cost at
	// finalize time because no reliable estimate exists for this channel.
	RequiresActualCost bool
}

// ChannelPolicies is the immutable channel configuration injected into the
// cost calculator and the reporting layer at startup. Unknown channels fall
// back to the marketplace cost provider with the channel code as its own
// display name.
type ChannelPolicies struct {
	policies map[string]ChannelPolicy
	stores   map[string]string
}

// NewChannelPolicies builds the lookup from explicit policy entries plus a
// store-ID -> display-name mapping used by the sync normalizer and the
// channel report.
func NewChannelPolicies(policies []ChannelPolicy, stores map[string]string) *ChannelPolicies {
	byKey := make(map[string]ChannelPolicy, len(policies))
	for _, p := range policies {
		byKey[p.Key] = p
	}

	storeNames := make(map[string]string, len(stores))
	for id, name := range stores {
		storeNames[id] = name
	}

	return &ChannelPolicies{policies: byKey, stores: storeNames}
}

// DefaultChannelPolicies returns the production channel set.
func DefaultChannelPolicies() *ChannelPolicies {
	return NewChannelPolicies(
		[]ChannelPolicy{
			{Key: "site", DisplayName: "Site", Source: SourceCarrierQuote},
			{Key: "mercado_livre", DisplayName: "Mercado Livre", Source: SourceFixedTable, FixedCost: kernel.MoneyFromFloat(11.00)},
			{Key: "shopee", DisplayName: "Shopee", Source: SourceFixedTable, FixedCost: kernel.MoneyFromFloat(12.00)},
			{Key: "tiktok", DisplayName: "TikTok", Source: SourceFixedTable, FixedCost: kernel.MoneyFromFloat(12.00)},
			{Key: "shein", DisplayName: "Shein", Source: SourceFixedTable, FixedCost: kernel.MoneyFromFloat(10.00)},
			{Key: "correios", DisplayName: "Correios", Source: SourceFixedTable, FixedCost: kernel.MoneyFromFloat(15.00)},
			{Key: "tray", DisplayName: "Tray", Source: SourceMarketplace, RequiresActualCost: true},
		},
		map[string]string{},
	)
}

// PolicyFor returns the policy of a channel. Unknown channels get a
// marketplace-sourced policy with the channel code as display name.
func (cp *ChannelPolicies) PolicyFor(channel string) ChannelPolicy {
	if p, ok := cp.policies[channel]; ok {
		return p
	}
	return ChannelPolicy{
		Key:         channel,
		DisplayName: channel,
		Source:      SourceMarketplace,
	}
}

// DisplayName returns the report label for a channel.
func (cp *ChannelPolicies) DisplayName(channel string) string {
	return cp.PolicyFor(channel).DisplayName
}

// RequiresActualCost reports whether a channel demands a real carrier cost
// at finalize time.
func (cp *ChannelPolicies) RequiresActualCost(channel string) bool {
	return cp.PolicyFor(channel).RequiresActualCost
}

// StoreName resolves a feed store ID to its display name, falling back to
// the raw ID when unmapped.
func (cp *ChannelPolicies) StoreName(storeID string) string {
	if name, ok := cp.stores[storeID]; ok {
		return name
	}
	return storeID
}
