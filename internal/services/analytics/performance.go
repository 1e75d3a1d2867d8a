package analytics

import (
	"math"

	"github.com/jcleland/cryptofolio/internal/models"
)

// ComputePerformanceMetrics derives trade statistics from the ordered
// realized-trade history. Pure function; zero trades yields all zeros
// rather than NaN.
func ComputePerformanceMetrics(trades []models.TradeAnalysis) models.PerformanceMetrics {
	metrics := models.PerformanceMetrics{TotalTrades: len(trades)}
	if len(trades) == 0 {
		return metrics
	}

	grossWins := 0.0
	grossLosses := 0.0
	totalHoldingDays := 0.0
	currentStreak := 0
	for _, t := range trades {
		totalHoldingDays += t.HoldingPeriodDays

		if t.IsWin {
			metrics.Wins++
			grossWins += t.RealizedPnL
			if t.RealizedPnL > metrics.LargestWin {
				metrics.LargestWin = t.RealizedPnL
			}
			if currentStreak > 0 {
				currentStreak++
			} else {
				currentStreak = 1
			}
			if currentStreak > metrics.LongestWinStreak {
				metrics.LongestWinStreak = currentStreak
			}
		} else {
			metrics.Losses++
			grossLosses += t.RealizedPnL
			if t.RealizedPnL < metrics.LargestLoss {
				metrics.LargestLoss = t.RealizedPnL
			}
			if currentStreak < 0 {
				currentStreak--
			} else {
				currentStreak = -1
			}
			if -currentStreak > metrics.LongestLossStreak {
				metrics.LongestLossStreak = -currentStreak
			}
		}
	}

	metrics.CurrentStreak = currentStreak
	metrics.WinRate = float64(metrics.Wins) / float64(metrics.TotalTrades)
	metrics.AvgHoldingDays = totalHoldingDays / float64(metrics.TotalTrades)

	switch {
	case grossLosses < 0:
		metrics.ProfitFactor = models.Ratio(grossWins / math.Abs(grossLosses))
	case grossWins > 0:
		metrics.ProfitFactor = models.Ratio(math.Inf(1))
	default:
		metrics.ProfitFactor = 0
	}

	return metrics
}
