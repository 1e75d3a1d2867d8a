// Package interfaces defines service contracts for Cryptofolio
package interfaces

import (
	"context"

	"github.com/jcleland/cryptofolio/internal/models"
)

// GeminiClient provides access to the Gemini API for natural-language
// report summaries.
type GeminiClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// SummarizeMetrics generates a natural-language portfolio summary
	SummarizeMetrics(ctx context.Context, metrics *models.PortfolioMetrics) (string, error)
}

// The advisory analyzers below are external collaborators. The engine never
// implements them itself; each is fanned out to concurrently with a
// per-branch timeout, and a failing branch degrades its report section to
// nil rather than aborting the siblings.

// PricePredictionAnalyzer produces advisory price-trend analysis.
type PricePredictionAnalyzer interface {
	AnalyzePrice(ctx context.Context, holdings []models.AssetHolding) (*models.PriceAnalysis, error)
}

// OnChainAnalyzer produces advisory on-chain activity metrics.
type OnChainAnalyzer interface {
	AnalyzeOnChain(ctx context.Context, holdings []models.AssetHolding) (*models.OnChainMetrics, error)
}

// WhaleAnalyzer produces advisory large-holder activity tracking.
type WhaleAnalyzer interface {
	TrackWhales(ctx context.Context, holdings []models.AssetHolding) (*models.WhaleActivity, error)
}

// CorrelationAnalyzer produces advisory cross-asset correlation analysis.
type CorrelationAnalyzer interface {
	AnalyzeCorrelation(ctx context.Context, holdings []models.AssetHolding) (*models.CorrelationAnalysis, error)
}
