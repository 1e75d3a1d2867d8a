// Package analytics implements the portfolio analytics engine: realized and
// unrealized PnL, performance and risk metrics, tax-lot optimization and the
// orchestrating service.
package analytics

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/jcleland/cryptofolio/internal/common"
	"github.com/jcleland/cryptofolio/internal/models"
	"github.com/jcleland/cryptofolio/internal/services/ledger"
)

// RealizedResult is the outcome of replaying the sell history.
type RealizedResult struct {
	TotalPnL       float64
	TotalCostBasis float64
	TotalProceeds  float64
	PnLPct         float64
	Trades         []models.TradeAnalysis
	Errors         []models.TradeError
}

// CalculateRealizedPnL replays every sell transaction in ascending time
// order against the ledger, sequentially consuming lots. This is the one
// call path allowed to mutate the canonical ledger for the duration of a
// top-level analysis. A trade that oversells its asset is reported as a
// TradeError and skipped; other assets and trades keep processing.
func CalculateRealizedPnL(led *ledger.Ledger, transactions []models.Transaction, logger *common.Logger) RealizedResult {
	sells := make([]models.Transaction, 0)
	for _, tx := range transactions {
		if tx.Type == models.TransactionSell && tx.Amount > 0 {
			sells = append(sells, tx)
		}
	}
	sort.SliceStable(sells, func(i, j int) bool {
		return sells[i].Timestamp < sells[j].Timestamp
	})

	result := RealizedResult{}
	for _, tx := range sells {
		consumed, err := led.Sell(tx.Asset, tx.Amount, tx.Time())
		if err != nil {
			code := "consume_failed"
			var insufficient *ledger.InsufficientCostBasisError
			if errors.As(err, &insufficient) {
				code = "insufficient_cost_basis"
			}
			logger.Warn().
				Str("asset", tx.Asset).
				Str("transaction_id", tx.ID).
				Err(err).
				Msg("Skipping sell: lot consumption failed")
			result.Errors = append(result.Errors, models.TradeError{
				Asset:         tx.Asset,
				TransactionID: tx.ID,
				Code:          code,
				Message:       err.Error(),
			})
			continue
		}

		proceeds := tx.Amount*tx.Price - tx.FeeBase
		realized := proceeds - consumed.CostBasisConsumed

		// Quantity-weighted average age across the consumed lots.
		holdingDays := 0.0
		if tx.Amount > 0 {
			weighted := 0.0
			for _, c := range consumed.Consumed {
				age := tx.Time().Sub(c.AcquiredAt).Hours() / 24
				weighted += c.Quantity * age
			}
			holdingDays = weighted / tx.Amount
		}

		result.Trades = append(result.Trades, models.TradeAnalysis{
			ID:                uuid.New().String(),
			SellTransactionID: tx.ID,
			Asset:             tx.Asset,
			QuantitySold:      tx.Amount,
			SaleProceeds:      proceeds,
			CostBasisConsumed: consumed.CostBasisConsumed,
			RealizedPnL:       realized,
			HoldingPeriodDays: holdingDays,
			IsWin:             realized > 0,
			SoldAt:            tx.Time(),
		})

		result.TotalPnL += realized
		result.TotalCostBasis += consumed.CostBasisConsumed
		result.TotalProceeds += proceeds
	}

	if result.TotalCostBasis > 0 {
		result.PnLPct = result.TotalPnL / result.TotalCostBasis * 100
	}

	return result
}
