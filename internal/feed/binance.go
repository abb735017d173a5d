// Package feed fetches candle history from the Binance public REST API.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"smc-engine/models"
)

const defaultBaseURL = "https://api.binance.com"

// intervals lists the kline intervals we request; anything else falls back
// to 1h rather than surfacing a Binance error for a typo'd timeframe.
var intervals = map[string]bool{
	"1m": true, "5m": true, "15m": true, "30m": true,
	"1h": true, "4h": true, "1d": true,
}

func mapInterval(timeframe string) string {
	if intervals[timeframe] {
		return timeframe
	}
	return "1h"
}

// Client is a rate-limited Binance market data client.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	logger     zerolog.Logger
}

// NewClient creates a new API client with rate limiting. baseURL may be empty
// for the production endpoint; timeout is in seconds.
func NewClient(baseURL string, timeout int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 5), // 5 requests per second
		baseURL: baseURL,
		logger:  log.With().Str("component", "feed").Logger(),
	}
}

// GetCandles fetches up to limit klines for symbol/interval, oldest first.
func (c *Client) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	url := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		c.baseURL, strings.ToUpper(symbol), mapInterval(interval), limit)

	c.logger.Debug().Str("url", url).Msg("Fetching candles")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Use exponential backoff for retries
	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
		}
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(backoffStrategy, ctx)); err != nil {
		return nil, fmt.Errorf("after retries: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	candles, err := parseKlines(body)
	if err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing klines")
		return nil, err
	}
	if len(candles) == 0 {
		c.logger.Warn().Str("response", string(body)).Msg("No candles in response")
		return nil, fmt.Errorf("empty data returned")
	}

	// Binance returns klines oldest first, but downstream validation rejects
	// any out-of-order feed, so sort rather than trust the wire order.
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Time < candles[j].Time
	})

	c.logger.Debug().Int("count", len(candles)).Msg("Fetched candles")
	return candles, nil
}

// parseKlines decodes the Binance kline wire format: a JSON array of rows,
// each [openTime, "open", "high", "low", "close", "volume", closeTime, ...].
// Timestamps arrive in milliseconds and are kept that way.
func parseKlines(body []byte) ([]models.Candle, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	candles := make([]models.Candle, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("kline %d: expected at least 6 fields, got %d", i, len(row))
		}

		var openTime int64
		if err := json.Unmarshal(row[0], &openTime); err != nil {
			return nil, fmt.Errorf("kline %d: open time: %w", i, err)
		}

		prices := make([]float64, 5)
		for j := 1; j <= 5; j++ {
			var s string
			if err := json.Unmarshal(row[j], &s); err != nil {
				return nil, fmt.Errorf("kline %d field %d: %w", i, j, err)
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("kline %d field %d: %w", i, j, err)
			}
			prices[j-1] = v
		}

		candles = append(candles, models.Candle{
			Time:   openTime,
			Open:   prices[0],
			High:   prices[1],
			Low:    prices[2],
			Close:  prices[3],
			Volume: prices[4],
		})
	}
	return candles, nil
}
