package analytics

import (
	"math"
	"testing"
	"time"
)

func approx(t *testing.T, got, want, tolerance float64, label string) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s = %v, want %v (±%v)", label, got, want, tolerance)
	}
}

func valueSeries(values ...float64) []ValuePoint {
	series := make([]ValuePoint, len(values))
	for i, v := range values {
		series[i] = ValuePoint{
			Time:  time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC),
			Value: v,
		}
	}
	return series
}

func TestDrawdowns(t *testing.T) {
	// Peak 120, trough 90: max drawdown 25%. The series recovers past the
	// peak, so the current drawdown is 0.
	series := valueSeries(100, 120, 90, 95, 130)

	maxDD, ddDate, currentDD := drawdowns(series)
	approx(t, maxDD, 0.25, 1e-9, "max drawdown")
	approx(t, currentDD, 0, 1e-9, "current drawdown")
	if want := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC); !ddDate.Equal(want) {
		t.Errorf("drawdown date = %v, want %v", ddDate, want)
	}
}

func TestDrawdowns_StillUnderwater(t *testing.T) {
	series := valueSeries(100, 120, 90)

	maxDD, _, currentDD := drawdowns(series)
	approx(t, maxDD, 0.25, 1e-9, "max drawdown")
	approx(t, currentDD, 0.25, 1e-9, "current drawdown")
}

func TestDrawdowns_Empty(t *testing.T) {
	maxDD, ddDate, currentDD := drawdowns(nil)
	if maxDD != 0 || currentDD != 0 || !ddDate.IsZero() {
		t.Errorf("empty series should yield zeros, got %v %v %v", maxDD, ddDate, currentDD)
	}
}

func TestComputeRiskMetrics_TooFewReturns(t *testing.T) {
	metrics := ComputeRiskMetrics(valueSeries(100, 101), []float64{0.01}, nil, 0)

	approx(t, metrics.Volatility, 0, 1e-9, "volatility for n<2")
	approx(t, metrics.SharpeRatio, 0, 1e-9, "sharpe without volatility")
	approx(t, metrics.Beta, 1, 1e-9, "default beta")
	approx(t, metrics.Alpha, 0, 1e-9, "default alpha")
	if metrics.SampleSize != 1 {
		t.Errorf("sample size = %d, want 1", metrics.SampleSize)
	}
}

func TestComputeRiskMetrics_Volatility(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.03, -0.01}

	metrics := ComputeRiskMetrics(valueSeries(100, 101, 99, 102, 101), returns, nil, 0)

	want := sampleStdDev(returns) * math.Sqrt(365)
	approx(t, metrics.Volatility, want, 1e-12, "annualized volatility")

	annualized := mean(returns) * 365
	approx(t, metrics.SharpeRatio, annualized/want, 1e-12, "sharpe")
}

func TestSortinoRatio(t *testing.T) {
	// No negative returns and positive excess: +Inf.
	if got := sortinoRatio([]float64{0.01, 0.02}, 0.05, 0); !got.IsInf() {
		t.Errorf("sortino with no downside = %v, want +Inf", got)
	}

	// No negative returns and zero excess: 0.
	if got := sortinoRatio([]float64{0.0, 0.0}, 0, 0); got != 0 {
		t.Errorf("sortino with zero excess = %v, want 0", got)
	}

	// Empty returns: 0, never Inf.
	if got := sortinoRatio(nil, 0, 0); got != 0 {
		t.Errorf("sortino on empty returns = %v, want 0", got)
	}

	// With downside the denominator uses only the negative subset.
	returns := []float64{0.02, -0.01, -0.03}
	downside := math.Sqrt((0.01*0.01+0.03*0.03)/2) * math.Sqrt(365)
	got := sortinoRatio(returns, 0.1, 0.02)
	approx(t, float64(got), 0.08/downside, 1e-12, "sortino with downside")
}

func TestComputeBeta(t *testing.T) {
	returns := []float64{0.02, -0.01, 0.03, 0.01}
	benchmark := []float64{0.01, -0.005, 0.015, 0.005}

	beta, ok := computeBeta(returns, benchmark)
	if !ok {
		t.Fatal("expected beta to be defined")
	}
	approx(t, beta, 2.0, 1e-9, "beta for a perfectly levered series")

	// Flat benchmark: undefined.
	if _, ok := computeBeta(returns, []float64{0.01, 0.01, 0.01, 0.01}); ok {
		t.Error("zero-variance benchmark should not define beta")
	}
}

func TestComputeRiskMetrics_BenchmarkLengthMismatch(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.03}
	metrics := ComputeRiskMetrics(valueSeries(100, 101, 99, 102), returns, []float64{0.01, 0.02}, 0)
	approx(t, metrics.Beta, 1, 1e-9, "mismatched benchmark keeps default beta")
	approx(t, metrics.Alpha, 0, 1e-9, "mismatched benchmark keeps default alpha")
}

func TestValueAtRisk(t *testing.T) {
	// 5 observations: idx = floor(5×0.05) = 0, so VaR and CVaR are the worst
	// return.
	returns := []float64{0.02, -0.05, 0.01, -0.01, 0.03}
	var95, cvar95 := valueAtRisk(returns)
	approx(t, var95, -0.05, 1e-9, "VaR95")
	approx(t, cvar95, -0.05, 1e-9, "CVaR95")

	// 40 observations: idx = 2, CVaR averages the worst three.
	long := make([]float64, 40)
	for i := range long {
		long[i] = float64(i) * 0.001
	}
	long[0], long[1], long[2] = -0.10, -0.08, -0.06
	var95, cvar95 = valueAtRisk(long)
	approx(t, var95, -0.06, 1e-9, "VaR95 at 5th percentile index")
	approx(t, cvar95, (-0.10-0.08-0.06)/3, 1e-9, "CVaR95 tail mean")

	var95, cvar95 = valueAtRisk(nil)
	if var95 != 0 || cvar95 != 0 {
		t.Errorf("empty returns should yield zero VaR/CVaR, got %v %v", var95, cvar95)
	}
}

func TestComputeRiskMetrics_Calmar(t *testing.T) {
	series := valueSeries(100, 120, 90, 95, 130)
	returns := DailyReturns(series)

	metrics := ComputeRiskMetrics(series, returns, nil, 0)
	approx(t, metrics.MaxDrawdown, 0.25, 1e-9, "max drawdown")

	annualized := mean(returns) * 365
	approx(t, metrics.CalmarRatio, annualized/0.25, 1e-9, "calmar")
}

func TestComputeRiskMetrics_Deterministic(t *testing.T) {
	series := valueSeries(100, 110, 95, 120, 105, 130)
	returns := DailyReturns(series)
	benchmark := []float64{0.05, -0.05, 0.1, -0.05, 0.1}

	first := ComputeRiskMetrics(series, returns, benchmark, 0.02)
	second := ComputeRiskMetrics(series, returns, benchmark, 0.02)
	if first != second {
		t.Errorf("identical inputs produced different metrics:\n%+v\n%+v", first, second)
	}
}
