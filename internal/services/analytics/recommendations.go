package analytics

import (
	"fmt"

	"github.com/jcleland/cryptofolio/internal/models"
)

// generateRecommendations applies simple threshold rules over the computed
// metrics to produce actionable text.
func generateRecommendations(metrics *models.PortfolioMetrics) []string {
	recommendations := make([]string, 0)

	if metrics.Risk.SampleSize >= 2 && metrics.Risk.SharpeRatio < 1 {
		recommendations = append(recommendations,
			fmt.Sprintf("Risk-adjusted return is weak (Sharpe %.2f); consider rebalancing toward less volatile assets", metrics.Risk.SharpeRatio))
	}

	if metrics.Risk.MaxDrawdown > 0.30 {
		recommendations = append(recommendations,
			fmt.Sprintf("Maximum drawdown of %.1f%% exceeds 30%%; review position sizing and stop-loss discipline", metrics.Risk.MaxDrawdown*100))
	}

	if metrics.Performance.TotalTrades >= 10 && metrics.Performance.WinRate < 0.4 {
		recommendations = append(recommendations,
			fmt.Sprintf("Win rate of %.0f%% over %d trades is low; review entry criteria", metrics.Performance.WinRate*100, metrics.Performance.TotalTrades))
	}

	if metrics.TotalValue > 0 {
		for _, h := range metrics.Holdings {
			if h.CurrentValue/metrics.TotalValue > 0.5 {
				recommendations = append(recommendations,
					fmt.Sprintf("%s is over half the portfolio value; consider diversifying the concentration", h.Asset))
				break
			}
		}
	}

	harvestable := 0
	for _, h := range metrics.Holdings {
		if h.UnrealizedPnLPct < -10 {
			harvestable++
		}
	}
	if harvestable > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("%d holdings carry unrealized losses over 10%%; tax-loss harvesting may offset realized gains", harvestable))
	}

	if metrics.Risk.Volatility > 1.0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Annualized volatility of %.0f%% is very high; the portfolio is dominated by speculative positions", metrics.Risk.Volatility*100))
	}

	return recommendations
}
