// Package interfaces defines service contracts for Cryptofolio
package interfaces

import (
	"context"

	"github.com/jcleland/cryptofolio/internal/models"
)

// AnalyticsService is the portfolio analytics engine's public contract.
type AnalyticsService interface {
	// AnalyzePortfolio runs the full pipeline (ledger, realized/unrealized
	// PnL, performance, risk, advisory fan-out) and returns one report.
	AnalyzePortfolio(ctx context.Context, holdings []models.AssetHolding, transactions []models.Transaction, currentPrices map[string]float64, opts AnalyzeOptions) (*models.PortfolioMetrics, error)

	// OptimizeTax compares lot-selection methods for a hypothetical sale and
	// recommends the one with the lowest tax impact. Never mutates ledger state.
	OptimizeTax(ctx context.Context, transactions []models.Transaction, asset string, sellQuantity, currentPrice float64) (*models.TaxOptimization, error)
}

// AnalyzeOptions configures a portfolio analysis
type AnalyzeOptions struct {
	// BenchmarkReturns is an optional benchmark return series for beta/alpha.
	// When absent (or of mismatched length) beta defaults to 1 and alpha to 0.
	BenchmarkReturns []float64
	// SkipAdvisory disables the external advisory fan-out for this call.
	SkipAdvisory bool
}

// ReportService persists and retrieves generated analysis reports.
type ReportService interface {
	// SaveReport stores a generated report under the portfolio name
	SaveReport(ctx context.Context, report *models.PortfolioReport) error

	// GetReport retrieves a stored report
	GetReport(ctx context.Context, portfolio string) (*models.PortfolioReport, error)

	// ListReports returns stored report names
	ListReports(ctx context.Context) ([]string, error)

	// DeleteReport removes a stored report
	DeleteReport(ctx context.Context, portfolio string) error
}
