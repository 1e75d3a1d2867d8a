package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcleland/cryptofolio/internal/common"
	"github.com/jcleland/cryptofolio/internal/models"
)

func TestCalculateUnrealizedPnL(t *testing.T) {
	holdings := []models.AssetHolding{
		{Asset: "BTC", TotalAmount: 2, TotalCost: 40000, CurrentPrice: 21000},
		{Asset: "ETH", TotalAmount: 10, TotalCost: 25000, CurrentPrice: 2400},
	}
	prices := map[string]float64{"BTC": 25000, "ETH": 2000}

	result := CalculateUnrealizedPnL(holdings, prices, common.NewSilentLogger())

	require.Len(t, result.Holdings, 2)
	assert.InDelta(t, 50000.0, result.Holdings[0].CurrentValue, 1e-9)
	assert.InDelta(t, 10000.0, result.Holdings[0].UnrealizedPnL, 1e-9)
	assert.InDelta(t, 25.0, result.Holdings[0].UnrealizedPnLPct, 1e-9)
	assert.False(t, result.Holdings[0].PriceStale)

	assert.InDelta(t, -5000.0, result.Holdings[1].UnrealizedPnL, 1e-9)
	assert.InDelta(t, -20.0, result.Holdings[1].UnrealizedPnLPct, 1e-9)

	assert.InDelta(t, 5000.0, result.TotalUnrealized, 1e-9)
	assert.InDelta(t, 70000.0, result.TotalValue, 1e-9)
	assert.InDelta(t, 65000.0, result.TotalCost, 1e-9)
	assert.Empty(t, result.StaleAssets)
}

func TestCalculateUnrealizedPnL_MissingPriceFallsBack(t *testing.T) {
	holdings := []models.AssetHolding{
		{Asset: "BTC", TotalAmount: 1, TotalCost: 20000, CurrentPrice: 22000},
	}

	result := CalculateUnrealizedPnL(holdings, map[string]float64{}, common.NewSilentLogger())

	require.Len(t, result.Holdings, 1)
	assert.True(t, result.Holdings[0].PriceStale)
	assert.InDelta(t, 22000.0, result.Holdings[0].CurrentValue, 1e-9, "last recorded price used")
	assert.Equal(t, []string{"BTC"}, result.StaleAssets)
}

func TestCalculateUnrealizedPnL_ZeroCostBasis(t *testing.T) {
	// Airdropped or minted at zero cost: percentage is defined as 0, not Inf.
	holdings := []models.AssetHolding{
		{Asset: "NFT", TotalAmount: 1, TotalCost: 0},
	}
	result := CalculateUnrealizedPnL(holdings, map[string]float64{"NFT": 500}, common.NewSilentLogger())
	assert.InDelta(t, 500.0, result.Holdings[0].UnrealizedPnL, 1e-9)
	assert.Zero(t, result.Holdings[0].UnrealizedPnLPct)
}
