package models

import "time"

// TradeAnalysis records one completed round-trip: a sell matched against the
// cost-basis lots it consumed.
type TradeAnalysis struct {
	ID                string    `json:"id"`
	SellTransactionID string    `json:"sell_transaction_id"`
	Asset             string    `json:"asset"`
	QuantitySold      float64   `json:"quantity_sold"`
	SaleProceeds      float64   `json:"sale_proceeds"` // quantity × price − fee
	CostBasisConsumed float64   `json:"cost_basis_consumed"`
	RealizedPnL       float64   `json:"realized_pnl"`
	// HoldingPeriodDays is the quantity-weighted average age of the consumed
	// lots, since a single sell can span lots of different ages.
	HoldingPeriodDays float64   `json:"holding_period_days"`
	IsWin             bool      `json:"is_win"`
	SoldAt            time.Time `json:"sold_at"`
}
