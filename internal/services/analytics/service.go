package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jcleland/cryptofolio/internal/common"
	"github.com/jcleland/cryptofolio/internal/interfaces"
	"github.com/jcleland/cryptofolio/internal/models"
	"github.com/jcleland/cryptofolio/internal/services/advisory"
	"github.com/jcleland/cryptofolio/internal/services/ledger"
)

// Service implements AnalyticsService. It owns no durable state: the ledger
// is rebuilt from the full transaction history on every call, so concurrent
// analyses for different portfolios never share mutable state.
type Service struct {
	config   common.AnalyticsConfig
	advisors *advisory.Aggregator
	gemini   interfaces.GeminiClient
	logger   *common.Logger
}

// NewService creates a new analytics service. advisors and gemini may be
// nil; their report sections then degrade to unavailable.
func NewService(config common.AnalyticsConfig, advisors *advisory.Aggregator, gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		config:   config,
		advisors: advisors,
		gemini:   gemini,
		logger:   logger,
	}
}

// AnalyzePortfolio runs the full analytics pipeline and assembles one
// PortfolioMetrics report.
func (s *Service) AnalyzePortfolio(ctx context.Context, holdings []models.AssetHolding, transactions []models.Transaction, currentPrices map[string]float64, opts interfaces.AnalyzeOptions) (*models.PortfolioMetrics, error) {
	method, err := ledger.ParseMethod(s.config.CostBasisMethod)
	if err != nil {
		return nil, fmt.Errorf("analytics configuration: %w", err)
	}

	s.logger.Info().
		Str("method", string(method)).
		Int("transactions", len(transactions)).
		Int("holdings", len(holdings)).
		Msg("Analyzing portfolio")

	led, err := ledger.BuildLots(transactions, method)
	if err != nil {
		return nil, fmt.Errorf("failed to build cost-basis lots: %w", err)
	}

	realized := CalculateRealizedPnL(led, transactions, s.logger)

	// An absent snapshot is reconstructed from the post-replay ledger; a
	// supplied one is trusted but checked against the conservation law.
	if len(holdings) == 0 {
		holdings = led.Holdings()
	} else {
		s.checkConservation(holdings, led)
	}

	unrealized := CalculateUnrealizedPnL(holdings, currentPrices, s.logger)
	performance := ComputePerformanceMetrics(realized.Trades)

	series := BuildValueSeries(transactions, s.config.CalendarResampling)
	returns := DailyReturns(series)
	risk := ComputeRiskMetrics(series, returns, opts.BenchmarkReturns, s.config.RiskFreeRate)

	now := time.Now().UTC()
	metrics := &models.PortfolioMetrics{
		GeneratedAt:      now,
		CostBasisMethod:  string(method),
		TotalValue:       unrealized.TotalValue,
		TotalCost:        unrealized.TotalCost,
		RealizedPnL:      realized.TotalPnL,
		RealizedPnLPct:   realized.PnLPct,
		UnrealizedPnL:    unrealized.TotalUnrealized,
		UnrealizedPnLPct: unrealized.PnLPct,
		TotalPnL:         realized.TotalPnL + unrealized.TotalUnrealized,
		Returns:          ComputePeriodReturns(series, now),
		Risk:             risk,
		Performance:      performance,
		Activity:         summarizeActivity(transactions),
		Holdings:         unrealized.Holdings,
		Trades:           realized.Trades,
		TradeErrors:      realized.Errors,
	}
	if metrics.TotalCost > 0 {
		metrics.TotalPnLPct = metrics.TotalPnL / metrics.TotalCost * 100
	}
	for _, asset := range unrealized.StaleAssets {
		metrics.Degraded = append(metrics.Degraded, "price:"+asset)
	}

	if !opts.SkipAdvisory {
		s.attachAdvisory(ctx, metrics)
	}

	metrics.Recommendations = generateRecommendations(metrics)
	s.attachSummary(ctx, metrics)

	s.logger.Info().
		Int("trades", len(metrics.Trades)).
		Int("trade_errors", len(metrics.TradeErrors)).
		Int("recommendations", len(metrics.Recommendations)).
		Msg("Portfolio analysis complete")

	return metrics, nil
}

// OptimizeTax compares FIFO, LIFO and HIFO for a hypothetical sale using
// speculative lot consumption; the canonical ledger is never touched.
func (s *Service) OptimizeTax(ctx context.Context, transactions []models.Transaction, asset string, sellQuantity, currentPrice float64) (*models.TaxOptimization, error) {
	// The history replay must consume under the configured accounting
	// method: which lots are still open depends on it.
	method, err := ledger.ParseMethod(s.config.CostBasisMethod)
	if err != nil {
		return nil, fmt.Errorf("analytics configuration: %w", err)
	}

	led, err := ledger.BuildLots(transactions, method)
	if err != nil {
		return nil, err
	}

	// Replay past sells first so the optimizer sees the lots still open now.
	replayed := CalculateRealizedPnL(led, transactions, common.NewSilentLogger())
	if len(replayed.Errors) > 0 {
		s.logger.Warn().
			Int("errors", len(replayed.Errors)).
			Msg("Transaction history has consume errors; tax optimization uses the consistent subset")
	}

	opt, err := OptimizeTaxStrategies(led.Lots(asset), asset, sellQuantity, currentPrice, time.Time{})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("asset", asset).
		Str("recommended", opt.Recommended.Method).
		Float64("tax_impact", opt.Recommended.TaxImpact).
		Msg("Tax optimization complete")

	return opt, nil
}

// checkConservation verifies the supplied snapshot against the ledger's
// remaining quantities. A mismatch is logged, not fatal - the snapshot may
// legitimately include balances the transaction log has not caught up with.
func (s *Service) checkConservation(holdings []models.AssetHolding, led *ledger.Ledger) {
	const epsilon = 1e-9
	for _, h := range holdings {
		remaining := led.RemainingQuantity(h.Asset)
		diff := h.TotalAmount - remaining
		if diff > epsilon || diff < -epsilon {
			s.logger.Warn().
				Str("asset", h.Asset).
				Float64("snapshot", h.TotalAmount).
				Float64("ledger", remaining).
				Msg("Holding snapshot disagrees with lot ledger")
		}
	}
}

func summarizeActivity(transactions []models.Transaction) models.ActivitySummary {
	summary := models.ActivitySummary{TransactionCount: len(transactions)}
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionBuy:
			summary.BuyCount++
		case models.TransactionSell:
			summary.SellCount++
		}
		summary.TotalFees += tx.FeeBase
	}
	return summary
}

// attachAdvisory fans out to the external advisory analyzers. Failures
// degrade their sections; they never fail the report.
func (s *Service) attachAdvisory(ctx context.Context, metrics *models.PortfolioMetrics) {
	if s.advisors == nil {
		metrics.Degraded = append(metrics.Degraded, "advisory")
		return
	}
	report := s.advisors.Collect(ctx, metrics.Holdings)
	metrics.Advisory = report
	for _, name := range report.Failed {
		metrics.Degraded = append(metrics.Degraded, "advisory:"+name)
	}
	sort.Strings(metrics.Degraded)
}

// attachSummary asks Gemini for a natural-language summary; a failure
// leaves the summary empty and marks the section degraded.
func (s *Service) attachSummary(ctx context.Context, metrics *models.PortfolioMetrics) {
	if s.gemini == nil {
		return
	}
	summary, err := s.gemini.SummarizeMetrics(ctx, metrics)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to generate AI summary")
		metrics.Degraded = append(metrics.Degraded, "summary")
		return
	}
	metrics.Summary = summary
}

// Ensure Service implements AnalyticsService
var _ interfaces.AnalyticsService = (*Service)(nil)
