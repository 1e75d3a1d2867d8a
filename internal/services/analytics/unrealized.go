package analytics

import (
	"github.com/jcleland/cryptofolio/internal/common"
	"github.com/jcleland/cryptofolio/internal/models"
)

// UnrealizedResult is the outcome of marking current holdings to market.
type UnrealizedResult struct {
	TotalUnrealized float64
	TotalValue      float64
	TotalCost       float64
	PnLPct          float64
	Holdings        []models.AssetHolding
	StaleAssets     []string
}

// CalculateUnrealizedPnL marks each holding to market using the supplied
// current-price map. A missing price falls back to the holding's last
// recorded price and flags the holding stale; one stale price never fails
// the report.
func CalculateUnrealizedPnL(holdings []models.AssetHolding, currentPrices map[string]float64, logger *common.Logger) UnrealizedResult {
	result := UnrealizedResult{
		Holdings: make([]models.AssetHolding, len(holdings)),
	}

	for i, h := range holdings {
		price, ok := currentPrices[h.Asset]
		if !ok || price <= 0 {
			price = h.CurrentPrice
			h.PriceStale = true
			result.StaleAssets = append(result.StaleAssets, h.Asset)
			logger.Warn().
				Str("asset", h.Asset).
				Float64("fallback_price", price).
				Msg("No current price; using last recorded price")
		}

		h.CurrentPrice = price
		h.CurrentValue = h.TotalAmount * price
		h.UnrealizedPnL = h.CurrentValue - h.TotalCost
		if h.TotalCost > 0 {
			h.UnrealizedPnLPct = h.UnrealizedPnL / h.TotalCost * 100
		} else {
			h.UnrealizedPnLPct = 0
		}

		result.TotalUnrealized += h.UnrealizedPnL
		result.TotalValue += h.CurrentValue
		result.TotalCost += h.TotalCost
		result.Holdings[i] = h
	}

	if result.TotalCost > 0 {
		result.PnLPct = result.TotalUnrealized / result.TotalCost * 100
	}

	return result
}
