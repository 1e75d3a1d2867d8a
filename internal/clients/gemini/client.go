// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/jcleland/cryptofolio/internal/common"
	"github.com/jcleland/cryptofolio/internal/interfaces"
	"github.com/jcleland/cryptofolio/internal/models"
)

const (
	DefaultModel     = "gemini-3-flash-preview"
	DefaultRateLimit = 10 // requests per minute
)

// Client implements the GeminiClient interface
type Client struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	logger  *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithRateLimit sets the request rate limit in requests per minute
func WithRateLimit(perMinute int) ClientOption {
	return func(c *Client) {
		if perMinute > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60), 1)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client:  genaiClient,
		model:   DefaultModel,
		limiter: rate.NewLimiter(rate.Limit(float64(DefaultRateLimit)/60), 1),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GenerateContent generates AI content from a prompt
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	c.logger.Debug().Str("model", c.model).Msg("Generating content")

	contents := genai.Text(prompt)
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(result)
}

// SummarizeMetrics generates a natural-language summary of an analysis report
func (c *Client) SummarizeMetrics(ctx context.Context, metrics *models.PortfolioMetrics) (string, error) {
	return c.GenerateContent(ctx, buildMetricsSummaryPrompt(metrics))
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// buildMetricsSummaryPrompt creates a prompt summarizing the analysis report
func buildMetricsSummaryPrompt(metrics *models.PortfolioMetrics) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `Summarize this crypto portfolio analysis:

Total Value: $%.2f
Total PnL: $%.2f (%.2f%%)
Realized PnL: $%.2f | Unrealized PnL: $%.2f
Cost Basis Method: %s

Risk:
- Annualized Volatility: %.1f%%
- Sharpe Ratio: %.2f
- Max Drawdown: %.1f%%
- VaR(95): %.2f%%

Performance:
- Trades: %d (win rate %.0f%%)
- Avg Holding Period: %.1f days
`,
		metrics.TotalValue,
		metrics.TotalPnL,
		metrics.TotalPnLPct,
		metrics.RealizedPnL,
		metrics.UnrealizedPnL,
		metrics.CostBasisMethod,
		metrics.Risk.Volatility*100,
		metrics.Risk.SharpeRatio,
		metrics.Risk.MaxDrawdown*100,
		metrics.Risk.VaR95*100,
		metrics.Performance.TotalTrades,
		metrics.Performance.WinRate*100,
		metrics.Performance.AvgHoldingDays,
	)

	if len(metrics.Recommendations) > 0 {
		sb.WriteString("\nRule-based findings:\n")
		for _, rec := range metrics.Recommendations {
			fmt.Fprintf(&sb, "- %s\n", rec)
		}
	}

	sb.WriteString("\nProvide a 2-3 sentence executive summary of portfolio health and the most important action to consider.")

	return sb.String()
}

// Ensure Client implements GeminiClient
var _ interfaces.GeminiClient = (*Client)(nil)
