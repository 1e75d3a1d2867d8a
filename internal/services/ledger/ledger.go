package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jcleland/cryptofolio/internal/models"
)

// Ledger holds the canonical per-asset lot queues for one analysis pass.
// It is rebuilt from the full transaction history on every top-level call,
// so no instance is ever shared across callers.
type Ledger struct {
	method Method
	lots   map[string][]models.CostBasisLot
}

// BuildLots constructs a ledger from the acquiring transactions (buy, mint,
// transfer_in) sorted ascending by timestamp, one lot per acquisition. The
// buy fee folds into the lot's total cost.
func BuildLots(transactions []models.Transaction, method Method) (*Ledger, error) {
	method, err := ParseMethod(string(method))
	if err != nil {
		return nil, err
	}

	acquisitions := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Type.Acquires() && tx.Amount > 0 {
			acquisitions = append(acquisitions, tx)
		}
	}
	sort.SliceStable(acquisitions, func(i, j int) bool {
		return acquisitions[i].Timestamp < acquisitions[j].Timestamp
	})

	lots := make(map[string][]models.CostBasisLot)
	for _, tx := range acquisitions {
		lots[tx.Asset] = append(lots[tx.Asset], models.CostBasisLot{
			ID:                uuid.New().String(),
			TransactionID:     tx.ID,
			Asset:             tx.Asset,
			QuantityOriginal:  tx.Amount,
			UnitCost:          tx.Price,
			TotalCost:         tx.Amount*tx.Price + tx.FeeBase,
			AcquiredAt:        tx.Time(),
			QuantityRemaining: tx.Amount,
		})
	}

	return &Ledger{method: method, lots: lots}, nil
}

// Method returns the ledger's consumption method.
func (l *Ledger) Method() Method {
	return l.method
}

// Assets returns the assets with at least one lot, sorted.
func (l *Ledger) Assets() []string {
	assets := make([]string, 0, len(l.lots))
	for asset := range l.lots {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	return assets
}

// Lots returns a copy of the asset's lot list, closed lots included.
func (l *Ledger) Lots(asset string) []models.CostBasisLot {
	return append([]models.CostBasisLot(nil), l.lots[asset]...)
}

// RemainingQuantity returns the total unconsumed quantity across the
// asset's lots.
func (l *Ledger) RemainingQuantity(asset string) float64 {
	total := 0.0
	for _, lot := range l.lots[asset] {
		total += lot.QuantityRemaining
	}
	return total
}

// RemainingCost returns the total unconsumed cost basis across the asset's
// lots, fees included.
func (l *Ledger) RemainingCost(asset string) float64 {
	total := 0.0
	for _, lot := range l.lots[asset] {
		total += lot.RemainingCost()
	}
	return total
}

// Holdings derives an aggregate position snapshot from the remaining lots.
func (l *Ledger) Holdings() []models.AssetHolding {
	holdings := make([]models.AssetHolding, 0, len(l.lots))
	for _, asset := range l.Assets() {
		amount := l.RemainingQuantity(asset)
		if amount <= 0 {
			continue
		}
		holdings = append(holdings, models.AssetHolding{
			Asset:       asset,
			TotalAmount: amount,
			TotalCost:   l.RemainingCost(asset),
		})
	}
	return holdings
}

// Sell consumes lots for a sale against the canonical ledger state. This is
// the one mutating path; the realized PnL replay is its only caller. On an
// oversell the ledger is left untouched and the error is returned.
func (l *Ledger) Sell(asset string, quantity float64, asOf time.Time) (*ConsumeResult, error) {
	result, err := Consume(l.lots[asset], asset, quantity, asOf, l.method)
	if err != nil {
		return nil, err
	}
	l.lots[asset] = result.Lots
	return result, nil
}

// ConsumedLot records how much of one lot a sale consumed.
type ConsumedLot struct {
	LotID      string
	AcquiredAt time.Time
	Quantity   float64
	CostBasis  float64
}

// ConsumeResult is the outcome of one lot consumption.
type ConsumeResult struct {
	CostBasisConsumed float64
	Consumed          []ConsumedLot
	// Lots is the full post-consumption lot list, closed lots retained.
	Lots []models.CostBasisLot
}

// Consume selects and consumes lots for a sale of the given quantity. It is
// a pure function: the caller's lot slice is never mutated and a fresh lot
// list is returned, which makes speculative calls from the tax optimizer
// side-effect-free by construction.
//
// Eligible lots have QuantityRemaining > 0 and AcquiredAt ≤ asOf (a zero
// asOf disables the time filter). If the eligible lots cannot supply the
// full quantity an InsufficientCostBasisError is returned and no lots are
// consumed.
func Consume(lots []models.CostBasisLot, asset string, quantity float64, asOf time.Time, method Method) (*ConsumeResult, error) {
	method, err := ParseMethod(string(method))
	if err != nil {
		return nil, err
	}

	updated := append([]models.CostBasisLot(nil), lots...)

	eligible := make([]int, 0, len(updated))
	available := 0.0
	for i, lot := range updated {
		if lot.QuantityRemaining <= 0 {
			continue
		}
		if !asOf.IsZero() && lot.AcquiredAt.After(asOf) {
			continue
		}
		eligible = append(eligible, i)
		available += lot.QuantityRemaining
	}

	if quantity > available {
		return nil, &InsufficientCostBasisError{
			Asset:     asset,
			Requested: quantity,
			Available: available,
		}
	}

	if method == MethodWAC {
		return consumeWAC(updated, eligible, quantity, available), nil
	}

	orderEligible(updated, eligible, method)

	result := &ConsumeResult{Lots: updated}
	remaining := quantity
	for _, idx := range eligible {
		if remaining <= 0 {
			break
		}
		lot := &updated[idx]
		take := remaining
		if lot.QuantityRemaining < take {
			take = lot.QuantityRemaining
		}
		costBasis := (take / lot.QuantityOriginal) * lot.TotalCost
		lot.QuantityRemaining -= take
		remaining -= take
		result.CostBasisConsumed += costBasis
		result.Consumed = append(result.Consumed, ConsumedLot{
			LotID:      lot.ID,
			AcquiredAt: lot.AcquiredAt,
			Quantity:   take,
			CostBasis:  costBasis,
		})
	}

	return result, nil
}

// orderEligible sorts the eligible index list according to the method's
// ordering rule.
func orderEligible(lots []models.CostBasisLot, eligible []int, method Method) {
	switch method {
	case MethodFIFO:
		sort.SliceStable(eligible, func(a, b int) bool {
			return lots[eligible[a]].AcquiredAt.Before(lots[eligible[b]].AcquiredAt)
		})
	case MethodLIFO:
		sort.SliceStable(eligible, func(a, b int) bool {
			return lots[eligible[a]].AcquiredAt.After(lots[eligible[b]].AcquiredAt)
		})
	case MethodHIFO:
		sort.SliceStable(eligible, func(a, b int) bool {
			la, lb := lots[eligible[a]], lots[eligible[b]]
			if la.UnitCost != lb.UnitCost {
				return la.UnitCost > lb.UnitCost
			}
			return la.AcquiredAt.Before(lb.AcquiredAt)
		})
	}
}

// consumeWAC collapses the eligible lots into a single weighted-average
// pool and reduces every eligible lot proportionally, so the per-lot
// conservation invariant still holds.
func consumeWAC(lots []models.CostBasisLot, eligible []int, quantity, available float64) *ConsumeResult {
	result := &ConsumeResult{Lots: lots}
	if available <= 0 || quantity <= 0 {
		return result
	}

	remainingCost := 0.0
	for _, idx := range eligible {
		remainingCost += lots[idx].RemainingCost()
	}
	poolUnitCost := remainingCost / available

	factor := (available - quantity) / available
	for _, idx := range eligible {
		lot := &lots[idx]
		take := lot.QuantityRemaining * (1 - factor)
		costBasis := take * poolUnitCost
		lot.QuantityRemaining -= take
		result.CostBasisConsumed += costBasis
		result.Consumed = append(result.Consumed, ConsumedLot{
			LotID:      lot.ID,
			AcquiredAt: lot.AcquiredAt,
			Quantity:   take,
			CostBasis:  costBasis,
		})
	}

	return result
}
