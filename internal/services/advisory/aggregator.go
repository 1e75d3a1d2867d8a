// Package advisory fans out to the external advisory analyzers and joins
// their results with partial-failure tolerance.
package advisory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jcleland/cryptofolio/internal/common"
	"github.com/jcleland/cryptofolio/internal/interfaces"
	"github.com/jcleland/cryptofolio/internal/models"
)

// Aggregator issues the advisory analyzer calls concurrently, each under
// its own timeout. A branch that fails or times out degrades to a nil
// report section; it never cancels its siblings. Nil analyzers count as
// unavailable.
type Aggregator struct {
	price       interfaces.PricePredictionAnalyzer
	onChain     interfaces.OnChainAnalyzer
	whale       interfaces.WhaleAnalyzer
	correlation interfaces.CorrelationAnalyzer
	timeout     time.Duration
	logger      *common.Logger
}

// NewAggregator creates an advisory aggregator. Any analyzer may be nil.
func NewAggregator(
	price interfaces.PricePredictionAnalyzer,
	onChain interfaces.OnChainAnalyzer,
	whale interfaces.WhaleAnalyzer,
	correlation interfaces.CorrelationAnalyzer,
	timeout time.Duration,
	logger *common.Logger,
) *Aggregator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Aggregator{
		price:       price,
		onChain:     onChain,
		whale:       whale,
		correlation: correlation,
		timeout:     timeout,
		logger:      logger,
	}
}

// Collect runs the fan-out and joins all branches.
func (a *Aggregator) Collect(ctx context.Context, holdings []models.AssetHolding) *models.AdvisoryReport {
	report := &models.AdvisoryReport{CollectedAt: time.Now().UTC()}

	// Unregistered branches are recorded before any goroutine starts, so
	// every later append to Failed happens under mu.
	if a.price == nil {
		report.Failed = append(report.Failed, "price")
	}
	if a.onChain == nil {
		report.Failed = append(report.Failed, "on_chain")
	}
	if a.whale == nil {
		report.Failed = append(report.Failed, "whale")
	}
	if a.correlation == nil {
		report.Failed = append(report.Failed, "correlation")
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	fail := func(name string, err error) {
		a.logger.Warn().Str("analyzer", name).Err(err).Msg("Advisory branch failed")
		mu.Lock()
		report.Failed = append(report.Failed, name)
		mu.Unlock()
	}

	run := func(name string, call func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			branchCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()
			if err := call(branchCtx); err != nil {
				fail(name, err)
			}
		}()
	}

	if a.price != nil {
		run("price", func(ctx context.Context) error {
			result, err := a.price.AnalyzePrice(ctx, holdings)
			if err != nil {
				return err
			}
			mu.Lock()
			report.Price = result
			mu.Unlock()
			return nil
		})
	}

	if a.onChain != nil {
		run("on_chain", func(ctx context.Context) error {
			result, err := a.onChain.AnalyzeOnChain(ctx, holdings)
			if err != nil {
				return err
			}
			mu.Lock()
			report.OnChain = result
			mu.Unlock()
			return nil
		})
	}

	if a.whale != nil {
		run("whale", func(ctx context.Context) error {
			result, err := a.whale.TrackWhales(ctx, holdings)
			if err != nil {
				return err
			}
			mu.Lock()
			report.Whale = result
			mu.Unlock()
			return nil
		})
	}

	if a.correlation != nil {
		run("correlation", func(ctx context.Context) error {
			result, err := a.correlation.AnalyzeCorrelation(ctx, holdings)
			if err != nil {
				return err
			}
			mu.Lock()
			report.Correlation = result
			mu.Unlock()
			return nil
		})
	}

	wg.Wait()
	sort.Strings(report.Failed)
	return report
}
