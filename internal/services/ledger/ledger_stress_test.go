package ledger

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jcleland/cryptofolio/internal/models"
)

// Randomized buy/sell sequences, seeded for reproducibility. After every
// sell the lot set must conserve quantity exactly and the consumed basis
// must never exceed what the lots carried.
func TestLedger_RandomSequenceConservation(t *testing.T) {
	for _, method := range []Method{MethodFIFO, MethodLIFO, MethodHIFO, MethodWAC} {
		t.Run(string(method), func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))

			var transactions []models.Transaction
			bought := 0.0
			for i := 0; i < 200; i++ {
				amount := 0.1 + rng.Float64()*5
				price := 100 + rng.Float64()*50000
				transactions = append(transactions, models.Transaction{
					ID:        "b",
					Type:      models.TransactionBuy,
					Asset:     "BTC",
					Amount:    amount,
					Price:     price,
					Timestamp: time.Date(2024, 1, 1, 0, i, 0, 0, time.UTC).UnixMilli(),
				})
				bought += amount
			}

			led, err := BuildLots(transactions, method)
			require.NoError(t, err)
			totalBasis := led.RemainingCost("BTC")

			sold := 0.0
			consumedBasis := 0.0
			for i := 0; i < 500; i++ {
				available := bought - sold
				if available < 1e-6 {
					break
				}
				qty := rng.Float64() * available * 0.1
				if qty <= 0 {
					continue
				}

				result, err := led.Sell("BTC", qty, time.Time{})
				require.NoError(t, err)
				sold += qty
				consumedBasis += result.CostBasisConsumed

				remaining := 0.0
				for _, lot := range led.Lots("BTC") {
					require.GreaterOrEqual(t, lot.QuantityRemaining, -1e-9)
					require.LessOrEqual(t, lot.QuantityRemaining, lot.QuantityOriginal+1e-9)
					remaining += lot.QuantityRemaining
				}
				require.InDelta(t, bought-sold, remaining, 1e-6,
					"conservation violated after sell %d", i)
			}

			// Consumed plus remaining basis must reconstruct the original total.
			require.InDelta(t, totalBasis, consumedBasis+led.RemainingCost("BTC"), totalBasis*1e-6)
		})
	}
}

// Consume must behave identically across repeated calls and across
// permutations that only differ in float accumulation order within a lot.
func TestConsume_RepeatDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	var transactions []models.Transaction
	for i := 0; i < 50; i++ {
		transactions = append(transactions, models.Transaction{
			ID:        "b",
			Type:      models.TransactionBuy,
			Asset:     "BTC",
			Amount:    0.5 + rng.Float64(),
			Price:     1000 + rng.Float64()*1000,
			Timestamp: time.Date(2024, 1, 1, 0, i, 0, 0, time.UTC).UnixMilli(),
		})
	}

	for _, method := range []Method{MethodFIFO, MethodLIFO, MethodHIFO, MethodWAC} {
		led, err := BuildLots(transactions, method)
		require.NoError(t, err)
		lots := led.Lots("BTC")

		first, err := Consume(lots, "BTC", 10, time.Time{}, method)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := Consume(lots, "BTC", 10, time.Time{}, method)
			require.NoError(t, err)
			require.Equal(t, first.CostBasisConsumed, again.CostBasisConsumed, "method %s", method)
			require.Equal(t, first.Consumed, again.Consumed)
		}
	}
}

// Tiny dust quantities near float precision must not produce negative
// remainders or NaN basis.
func TestConsume_DustQuantities(t *testing.T) {
	led, err := BuildLots([]models.Transaction{
		{ID: "b1", Type: models.TransactionBuy, Asset: "BTC", Amount: 1e-8, Price: 30000,
			Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
	}, MethodFIFO)
	require.NoError(t, err)

	result, err := led.Sell("BTC", 1e-8, time.Time{})
	require.NoError(t, err)
	require.False(t, math.IsNaN(result.CostBasisConsumed))
	require.GreaterOrEqual(t, led.RemainingQuantity("BTC"), 0.0)
}
