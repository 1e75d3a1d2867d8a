package models

import "time"

// AssetHolding is the current aggregate position for a single asset.
// TotalAmount must always equal the sum of QuantityRemaining over the
// asset's lot set - the ledger's conservation law.
type AssetHolding struct {
	Asset        string    `json:"asset"`
	TotalAmount  float64   `json:"total_amount"`
	TotalCost    float64   `json:"total_cost"` // sum of remaining cost across lots
	CurrentPrice float64   `json:"current_price"`
	CurrentValue float64   `json:"current_value"`
	LastUpdated  time.Time `json:"last_updated,omitempty"`

	// Mark-to-market results - populated by the unrealized PnL calculator
	UnrealizedPnL    float64 `json:"unrealized_pnl"`
	UnrealizedPnLPct float64 `json:"unrealized_pnl_pct"`

	// PriceStale is set when no current price was supplied for the asset and
	// the last recorded price was used instead.
	PriceStale bool `json:"price_stale,omitempty"`
}
