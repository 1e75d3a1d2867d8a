package models

import (
	"encoding/json"
	"math"
	"time"
)

// Ratio is a float64 that survives JSON serialization when its value is
// +Inf. Profit factor and Sortino are defined as +Inf in specific edge
// cases (no losing trades, no negative returns) and that state must stay
// distinguishable from a large-but-finite value in exported reports.
type Ratio float64

// IsInf reports whether the ratio is positive infinity.
func (r Ratio) IsInf() bool {
	return math.IsInf(float64(r), 1)
}

// MarshalJSON encodes +Inf as the string "Infinity"; finite values encode
// as plain numbers.
func (r Ratio) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsInf(f, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(f, -1) {
		return []byte(`"-Infinity"`), nil
	}
	if math.IsNaN(f) {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON accepts either a number or the string "Infinity".
func (r *Ratio) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*r = Ratio(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Infinity":
		*r = Ratio(math.Inf(1))
	case "-Infinity":
		*r = Ratio(math.Inf(-1))
	default:
		*r = 0
	}
	return nil
}

// PerformanceMetrics summarizes the realized-trade history.
type PerformanceMetrics struct {
	TotalTrades       int     `json:"total_trades"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	WinRate           float64 `json:"win_rate"` // wins / totalTrades, 0 for no trades
	ProfitFactor      Ratio   `json:"profit_factor"`
	LargestWin        float64 `json:"largest_win"`
	LargestLoss       float64 `json:"largest_loss"`
	CurrentStreak     int     `json:"current_streak"` // positive = wins, negative = losses
	LongestWinStreak  int     `json:"longest_win_streak"`
	LongestLossStreak int     `json:"longest_loss_streak"`
	AvgHoldingDays    float64 `json:"avg_holding_period_days"`
}

// RiskMetrics summarizes the statistical risk profile derived from the
// portfolio return series.
type RiskMetrics struct {
	Volatility      float64   `json:"volatility"` // annualized sample stdev
	SharpeRatio     float64   `json:"sharpe_ratio"`
	SortinoRatio    Ratio     `json:"sortino_ratio"`
	MaxDrawdown     float64   `json:"max_drawdown"` // fraction of peak, 0..1
	MaxDrawdownDate time.Time `json:"max_drawdown_date,omitempty"`
	CurrentDrawdown float64   `json:"current_drawdown"`
	Beta            float64   `json:"beta"`
	Alpha           float64   `json:"alpha"`
	VaR95           float64   `json:"var_95"`
	CVaR95          float64   `json:"cvar_95"`
	CalmarRatio     float64   `json:"calmar_ratio"`
	SampleSize      int       `json:"sample_size"` // number of return observations
}

// PeriodReturn is the portfolio value change over one lookback bucket.
type PeriodReturn struct {
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
}

// PeriodReturns holds the time-bucketed returns for the standard lookbacks.
type PeriodReturns struct {
	Day     PeriodReturn `json:"day"`
	Week    PeriodReturn `json:"week"`
	Month   PeriodReturn `json:"month"`
	Year    PeriodReturn `json:"year"`
	AllTime PeriodReturn `json:"all_time"`
}

// ActivitySummary holds transaction activity counters.
type ActivitySummary struct {
	TransactionCount int     `json:"transaction_count"`
	BuyCount         int     `json:"buy_count"`
	SellCount        int     `json:"sell_count"`
	TotalFees        float64 `json:"total_fees"`
}

// TradeError reports a per-trade structural failure (e.g. an oversell) so a
// single bad transaction does not blank the whole report.
type TradeError struct {
	Asset         string `json:"asset"`
	TransactionID string `json:"transaction_id,omitempty"`
	Code          string `json:"code"`
	Message       string `json:"message"`
}

// PortfolioMetrics is the engine's full output, produced fresh on every
// analysis call. It has no lifecycle of its own.
type PortfolioMetrics struct {
	GeneratedAt     time.Time `json:"generated_at"`
	CostBasisMethod string    `json:"cost_basis_method"`

	TotalValue       float64 `json:"total_value"`
	TotalCost        float64 `json:"total_cost"`
	RealizedPnL      float64 `json:"realized_pnl"`
	RealizedPnLPct   float64 `json:"realized_pnl_pct"`
	UnrealizedPnL    float64 `json:"unrealized_pnl"`
	UnrealizedPnLPct float64 `json:"unrealized_pnl_pct"`
	TotalPnL         float64 `json:"total_pnl"`
	TotalPnLPct      float64 `json:"total_pnl_pct"`

	Returns     PeriodReturns      `json:"returns"`
	Risk        RiskMetrics        `json:"risk"`
	Performance PerformanceMetrics `json:"performance"`
	Activity    ActivitySummary    `json:"activity"`

	Holdings []AssetHolding  `json:"holdings"`
	Trades   []TradeAnalysis `json:"trades"`

	// TradeErrors carries per-trade failures; Degraded names report sections
	// that fell back or were unavailable (stale prices, failed advisors).
	TradeErrors []TradeError `json:"trade_errors,omitempty"`
	Degraded    []string     `json:"degraded,omitempty"`

	Advisory        *AdvisoryReport `json:"advisory,omitempty"`
	Summary         string          `json:"summary,omitempty"`
	Recommendations []string        `json:"recommendations"`
}
