package models

import "time"

// LotState describes the lifecycle stage of a cost-basis lot.
type LotState string

const (
	LotStateOpen              LotState = "open"
	LotStatePartiallyConsumed LotState = "partially_consumed"
	LotStateClosed            LotState = "closed"
)

// CostBasisLot represents one unconsumed (or partially consumed) acquisition.
// QuantityRemaining only decreases, never increases, and only through
// consumption by a sell. Closed lots are retained for audit, never deleted.
type CostBasisLot struct {
	ID                string    `json:"id"`
	TransactionID     string    `json:"transaction_id"`
	Asset             string    `json:"asset"`
	QuantityOriginal  float64   `json:"quantity_original"`
	UnitCost          float64   `json:"unit_cost"`
	TotalCost         float64   `json:"total_cost"` // quantityOriginal × unitCost + allocated fee
	AcquiredAt        time.Time `json:"acquired_at"`
	QuantityRemaining float64   `json:"quantity_remaining"`
}

// State returns the lifecycle state implied by the remaining quantity.
func (l CostBasisLot) State() LotState {
	switch {
	case l.QuantityRemaining <= 0:
		return LotStateClosed
	case l.QuantityRemaining < l.QuantityOriginal:
		return LotStatePartiallyConsumed
	default:
		return LotStateOpen
	}
}

// RemainingCost returns the cost basis still attached to the unconsumed
// portion of the lot, including its share of the allocated fee.
func (l CostBasisLot) RemainingCost() float64 {
	if l.QuantityOriginal <= 0 {
		return 0
	}
	return (l.QuantityRemaining / l.QuantityOriginal) * l.TotalCost
}
