package models

import "time"

// Advisory result types. Each section is a pointer: nil means the analyzer
// was unavailable or failed, which is a legitimate degraded state rather
// than an error.

// PriceAnalysis is the price-prediction analyzer's result.
type PriceAnalysis struct {
	Trend      string   `json:"trend"` // bullish, bearish, neutral
	Confidence float64  `json:"confidence"`
	Insights   []string `json:"insights"`
}

// OnChainMetrics is the on-chain analyzer's result.
type OnChainMetrics struct {
	Trend          string   `json:"trend"`
	Confidence     float64  `json:"confidence"`
	ActiveAddrs24h int64    `json:"active_addresses_24h,omitempty"`
	Insights       []string `json:"insights"`
}

// WhaleActivity is the whale-tracking analyzer's result.
type WhaleActivity struct {
	Trend          string   `json:"trend"`
	Confidence     float64  `json:"confidence"`
	LargeTransfers int      `json:"large_transfers,omitempty"`
	Insights       []string `json:"insights"`
}

// CorrelationAnalysis is the cross-asset correlation analyzer's result.
type CorrelationAnalysis struct {
	Trend       string             `json:"trend"`
	Confidence  float64            `json:"confidence"`
	PairwiseAvg float64            `json:"pairwise_avg,omitempty"`
	ByAsset     map[string]float64 `json:"by_asset,omitempty"`
	Insights    []string           `json:"insights"`
}

// AdvisoryReport aggregates the advisory fan-out results. Failed lists the
// branches that errored or timed out.
type AdvisoryReport struct {
	CollectedAt time.Time            `json:"collected_at"`
	Price       *PriceAnalysis       `json:"price,omitempty"`
	OnChain     *OnChainMetrics      `json:"on_chain,omitempty"`
	Whale       *WhaleActivity       `json:"whale,omitempty"`
	Correlation *CorrelationAnalysis `json:"correlation,omitempty"`
	Failed      []string             `json:"failed,omitempty"`
}
