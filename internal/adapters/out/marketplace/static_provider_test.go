package marketplace_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/marketplace"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
)

func TestStaticProvider_ConfiguredChannel(t *testing.T) {
	provider := marketplace.NewStaticProvider(map[string]kernel.Money{
		"tray": kernel.MoneyFromFloat(9.90),
	})

	amount, found, err := provider.MarketplaceCost(context.Background(), "1001", "tray")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "9.90", amount.String())
}

func TestStaticProvider_UnknownChannelIsAMiss(t *testing.T) {
	provider := marketplace.NewStaticProvider(nil)

	amount, found, err := provider.MarketplaceCost(context.Background(), "1001", "tray")
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, amount.IsZero())
}
