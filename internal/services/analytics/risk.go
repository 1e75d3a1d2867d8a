package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/jcleland/cryptofolio/internal/models"
)

const annualizationDays = 365

// ComputeRiskMetrics derives the statistical risk profile from the value
// series and its return series. All outputs are deterministic pure
// functions of the inputs. A missing or mismatched benchmark yields the
// neutral defaults beta=1, alpha=0 rather than an error.
func ComputeRiskMetrics(series []ValuePoint, returns, benchmark []float64, riskFreeRate float64) models.RiskMetrics {
	metrics := models.RiskMetrics{
		Beta:       1,
		SampleSize: len(returns),
	}

	meanReturn := mean(returns)
	annualized := meanReturn * annualizationDays

	// Volatility: annualized sample stdev, defined as 0 for n < 2.
	if len(returns) >= 2 {
		metrics.Volatility = sampleStdDev(returns) * math.Sqrt(annualizationDays)
	}

	if metrics.Volatility > 0 {
		metrics.SharpeRatio = (annualized - riskFreeRate) / metrics.Volatility
	}

	metrics.SortinoRatio = sortinoRatio(returns, annualized, riskFreeRate)

	maxDD, ddDate, currentDD := drawdowns(series)
	metrics.MaxDrawdown = maxDD
	metrics.MaxDrawdownDate = ddDate
	metrics.CurrentDrawdown = currentDD

	if len(benchmark) == len(returns) && len(returns) >= 2 {
		if beta, ok := computeBeta(returns, benchmark); ok {
			metrics.Beta = beta
			benchAnnualized := mean(benchmark) * annualizationDays
			metrics.Alpha = annualized - (riskFreeRate + beta*(benchAnnualized-riskFreeRate))
		}
	}

	metrics.VaR95, metrics.CVaR95 = valueAtRisk(returns)

	if metrics.MaxDrawdown > 0 {
		metrics.CalmarRatio = annualized / metrics.MaxDrawdown
	}

	return metrics
}

// sortinoRatio uses only the negative-return subset for the denominator.
// With zero negative returns it is +Inf when the excess return is positive,
// otherwise 0.
func sortinoRatio(returns []float64, annualized, riskFreeRate float64) models.Ratio {
	sumSq := 0.0
	negatives := 0
	for _, r := range returns {
		if r < 0 {
			sumSq += r * r
			negatives++
		}
	}

	excess := annualized - riskFreeRate
	if negatives == 0 {
		if excess > 0 && len(returns) > 0 {
			return models.Ratio(math.Inf(1))
		}
		return 0
	}

	downside := math.Sqrt(sumSq/float64(negatives)) * math.Sqrt(annualizationDays)
	if downside == 0 {
		return 0
	}
	return models.Ratio(excess / downside)
}

// drawdowns runs a single forward scan tracking the running peak. It
// returns the maximum drawdown with the date it bottomed out, plus the
// current drawdown measured against the all-time peak.
func drawdowns(series []ValuePoint) (maxDD float64, maxDDDate time.Time, currentDD float64) {
	if len(series) == 0 {
		return 0, time.Time{}, 0
	}

	peak := series[0].Value
	for _, p := range series {
		if p.Value > peak {
			peak = p.Value
		}
		if peak <= 0 {
			continue
		}
		dd := (peak - p.Value) / peak
		if dd > maxDD {
			maxDD = dd
			maxDDDate = p.Time
		}
	}

	last := series[len(series)-1].Value
	if peak > 0 {
		currentDD = (peak - last) / peak
	}
	return maxDD, maxDDDate, currentDD
}

// computeBeta returns cov(returns, benchmark) / var(benchmark). The second
// return is false when the benchmark has zero variance.
func computeBeta(returns, benchmark []float64) (float64, bool) {
	meanR := mean(returns)
	meanB := mean(benchmark)

	cov := 0.0
	varB := 0.0
	for i := range returns {
		cov += (returns[i] - meanR) * (benchmark[i] - meanB)
		varB += (benchmark[i] - meanB) * (benchmark[i] - meanB)
	}
	if varB == 0 {
		return 0, false
	}
	return cov / varB, true
}

// valueAtRisk sorts returns ascending and reads the 5th-percentile index
// for VaR95; CVaR95 is the mean of all returns at or below that index.
func valueAtRisk(returns []float64) (var95, cvar95 float64) {
	if len(returns) == 0 {
		return 0, 0
	}

	sorted := append([]float64(nil), returns...)
	sort.Float64s(sorted)

	idx := int(math.Floor(float64(len(sorted)) * 0.05))
	var95 = sorted[idx]

	sum := 0.0
	for i := 0; i <= idx; i++ {
		sum += sorted[i]
	}
	cvar95 = sum / float64(idx+1)
	return var95, cvar95
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev divides by n-1; callers guard n >= 2.
func sampleStdDev(values []float64) float64 {
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		sumSq += (v - m) * (v - m)
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}
