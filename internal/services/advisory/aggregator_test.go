package advisory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcleland/cryptofolio/internal/common"
	"github.com/jcleland/cryptofolio/internal/models"
)

type fakePriceAnalyzer struct {
	result *models.PriceAnalysis
	err    error
	delay  time.Duration
}

func (f *fakePriceAnalyzer) AnalyzePrice(ctx context.Context, holdings []models.AssetHolding) (*models.PriceAnalysis, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

type fakeOnChainAnalyzer struct {
	result *models.OnChainMetrics
	err    error
}

func (f *fakeOnChainAnalyzer) AnalyzeOnChain(ctx context.Context, holdings []models.AssetHolding) (*models.OnChainMetrics, error) {
	return f.result, f.err
}

type fakeWhaleAnalyzer struct {
	result *models.WhaleActivity
	err    error
}

func (f *fakeWhaleAnalyzer) TrackWhales(ctx context.Context, holdings []models.AssetHolding) (*models.WhaleActivity, error) {
	return f.result, f.err
}

type fakeCorrelationAnalyzer struct {
	result *models.CorrelationAnalysis
	err    error
}

func (f *fakeCorrelationAnalyzer) AnalyzeCorrelation(ctx context.Context, holdings []models.AssetHolding) (*models.CorrelationAnalysis, error) {
	return f.result, f.err
}

func TestCollect_AllSucceed(t *testing.T) {
	agg := NewAggregator(
		&fakePriceAnalyzer{result: &models.PriceAnalysis{Trend: "bullish"}},
		&fakeOnChainAnalyzer{result: &models.OnChainMetrics{Trend: "steady"}},
		&fakeWhaleAnalyzer{result: &models.WhaleActivity{Trend: "accumulating"}},
		&fakeCorrelationAnalyzer{result: &models.CorrelationAnalysis{Trend: "diverging"}},
		time.Second,
		common.NewSilentLogger(),
	)

	report := agg.Collect(context.Background(), nil)

	require.NotNil(t, report)
	assert.Empty(t, report.Failed)
	assert.Equal(t, "bullish", report.Price.Trend)
	assert.Equal(t, "steady", report.OnChain.Trend)
	assert.Equal(t, "accumulating", report.Whale.Trend)
	assert.Equal(t, "diverging", report.Correlation.Trend)
	assert.False(t, report.CollectedAt.IsZero())
}

func TestCollect_FailureDoesNotCancelSiblings(t *testing.T) {
	agg := NewAggregator(
		&fakePriceAnalyzer{err: errors.New("upstream 503")},
		&fakeOnChainAnalyzer{result: &models.OnChainMetrics{Trend: "steady"}},
		&fakeWhaleAnalyzer{result: &models.WhaleActivity{Trend: "quiet"}},
		&fakeCorrelationAnalyzer{result: &models.CorrelationAnalysis{Trend: "flat"}},
		time.Second,
		common.NewSilentLogger(),
	)

	report := agg.Collect(context.Background(), nil)

	assert.Equal(t, []string{"price"}, report.Failed)
	assert.Nil(t, report.Price)
	require.NotNil(t, report.OnChain)
	require.NotNil(t, report.Whale)
	require.NotNil(t, report.Correlation)
}

func TestCollect_TimeoutDegradesBranch(t *testing.T) {
	agg := NewAggregator(
		&fakePriceAnalyzer{result: &models.PriceAnalysis{}, delay: 500 * time.Millisecond},
		&fakeOnChainAnalyzer{result: &models.OnChainMetrics{Trend: "steady"}},
		nil,
		nil,
		20*time.Millisecond,
		common.NewSilentLogger(),
	)

	start := time.Now()
	report := agg.Collect(context.Background(), nil)
	elapsed := time.Since(start)

	assert.Contains(t, report.Failed, "price")
	assert.Nil(t, report.Price)
	require.NotNil(t, report.OnChain)
	assert.Less(t, elapsed, 400*time.Millisecond, "the timed-out branch must not block the join")
}

func TestCollect_TimeoutWithUnregisteredSiblings(t *testing.T) {
	// A slow failing branch appends to Failed concurrently with the join
	// while the three unregistered siblings are recorded up front; the
	// combined list must come out complete and sorted.
	agg := NewAggregator(
		&fakePriceAnalyzer{result: &models.PriceAnalysis{}, delay: 200 * time.Millisecond},
		nil,
		nil,
		nil,
		10*time.Millisecond,
		common.NewSilentLogger(),
	)

	report := agg.Collect(context.Background(), nil)
	assert.Equal(t, []string{"correlation", "on_chain", "price", "whale"}, report.Failed)
	assert.Nil(t, report.Price)
}

func TestCollect_NilAnalyzersCountAsFailed(t *testing.T) {
	agg := NewAggregator(nil, nil, nil, nil, time.Second, common.NewSilentLogger())

	report := agg.Collect(context.Background(), nil)
	assert.Equal(t, []string{"correlation", "on_chain", "price", "whale"}, report.Failed, "sorted for determinism")
}

func TestNewAggregator_DefaultTimeout(t *testing.T) {
	agg := NewAggregator(nil, nil, nil, nil, 0, common.NewSilentLogger())
	assert.Equal(t, 10*time.Second, agg.timeout)
}
