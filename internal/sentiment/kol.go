// Package sentiment integrates the Kol API for market sentiment and trend
// outlook enrichment.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"smc-engine/models"
)

const requestTimeout = 5 * time.Second

// Client talks to the Kol API. Both halves of FullAnalysis degrade
// independently: a failed sub-request yields a nil half, not an error.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     zerolog.Logger
}

// NewClient creates a Kol API client. An empty apiKey is allowed; the API
// will reject the calls and enrichment degrades to nothing.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		logger:     log.With().Str("component", "sentiment").Logger(),
	}
}

// FullAnalysis fetches sentiment and trend concurrently and bundles whatever
// succeeded. It only errors when both halves failed.
func (c *Client) FullAnalysis(ctx context.Context, symbol string) (*models.MarketInsight, error) {
	symbol = strings.ToUpper(symbol)

	var (
		wg       sync.WaitGroup
		sent     *models.MarketSentiment
		trend    *models.TrendOutlook
		sentErr  error
		trendErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sent, sentErr = c.getSentiment(ctx, symbol)
	}()
	go func() {
		defer wg.Done()
		trend, trendErr = c.getTrend(ctx, symbol)
	}()
	wg.Wait()

	if sentErr != nil {
		c.logger.Warn().Err(sentErr).Str("symbol", symbol).Msg("sentiment unavailable")
	}
	if trendErr != nil {
		c.logger.Warn().Err(trendErr).Str("symbol", symbol).Msg("trend outlook unavailable")
	}
	if sentErr != nil && trendErr != nil {
		return nil, fmt.Errorf("kol analysis for %s: %w", symbol, sentErr)
	}

	return &models.MarketInsight{
		Symbol:    symbol,
		Sentiment: sent,
		Trend:     trend,
		Timestamp: time.Now().UTC(),
	}, nil
}

func (c *Client) getSentiment(ctx context.Context, symbol string) (*models.MarketSentiment, error) {
	var out models.MarketSentiment
	if err := c.get(ctx, "/sentiment/"+symbol, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getTrend(ctx context.Context, symbol string) (*models.TrendOutlook, error) {
	var out models.TrendOutlook
	if err := c.get(ctx, "/trend/"+symbol, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	return nil
}
