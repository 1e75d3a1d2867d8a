package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/jcleland/cryptofolio/internal/models"
	"github.com/jcleland/cryptofolio/internal/services/ledger"
)

// taxMethods are the lot-selection methods the optimizer compares. WAC is
// excluded: a pooled average is not a lot-selection choice a seller can
// elect per disposal.
var taxMethods = []ledger.Method{ledger.MethodFIFO, ledger.MethodLIFO, ledger.MethodHIFO}

// OptimizeTaxStrategies speculatively consumes the asset's lots under each
// candidate method and ranks the outcomes by tax impact, lowest first (a
// harvested loss beats a gain). The input lots are never mutated.
func OptimizeTaxStrategies(lots []models.CostBasisLot, asset string, sellQuantity, currentPrice float64, asOf time.Time) (*models.TaxOptimization, error) {
	if sellQuantity <= 0 {
		return nil, fmt.Errorf("sell quantity must be positive, got %v", sellQuantity)
	}

	proceeds := sellQuantity * currentPrice
	strategies := make([]models.TaxStrategy, 0, len(taxMethods))
	for _, method := range taxMethods {
		result, err := ledger.Consume(lots, asset, sellQuantity, asOf, method)
		if err != nil {
			// Availability is identical across methods, so any consume error
			// (an oversell) applies to the whole comparison.
			return nil, err
		}
		strategies = append(strategies, models.TaxStrategy{
			Method:            string(method),
			CostBasisConsumed: result.CostBasisConsumed,
			Proceeds:          proceeds,
			TaxImpact:         proceeds - result.CostBasisConsumed,
		})
	}

	sort.SliceStable(strategies, func(i, j int) bool {
		return strategies[i].TaxImpact < strategies[j].TaxImpact
	})

	return &models.TaxOptimization{
		Asset:        asset,
		SellQuantity: sellQuantity,
		CurrentPrice: currentPrice,
		Recommended:  strategies[0],
		Alternatives: strategies[1:],
	}, nil
}
