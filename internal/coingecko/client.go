// Package coingecko is the outbound adapter for the CoinGecko REST API.
// All requests go through one retry policy with exponential backoff and a
// client-side rate limiter, so every endpoint handles rate limiting and
// transient failures the same way.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/config"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/models"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/retry"
)

// topCoins is how many rows the live market table shows.
const topCoins = 10

// retryableStatuses are the HTTP statuses treated as transient. 429 is
// CoinGecko's free-tier rate limit; the rest are the usual gateway failures.
var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Client talks to the CoinGecko API
type Client struct {
	cfg        config.CoinGeckoConfig
	httpClient *http.Client
	logger     *logrus.Entry
	limiter    *rate.Limiter
	policy     retry.Policy
}

// NewClient creates a new CoinGecko client from configuration
func NewClient(cfg config.CoinGeckoConfig, log *logrus.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 30
	}

	policy := retry.Policy{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
		Factor:         cfg.BackoffFactor,
	}
	if policy.MaxRetries <= 0 {
		policy = retry.DefaultPolicy()
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log.WithField("component", "coingecko"),
		limiter:    rate.NewLimiter(rate.Limit(float64(cfg.RateLimitPerMin)/60.0), 1),
		policy:     policy,
	}
}

// MarketsTop10 fetches the top 10 coins by market cap for a currency.
// Upstream ordering (descending market cap) is preserved.
func (c *Client) MarketsTop10(ctx context.Context, currency string) ([]models.Coin, error) {
	endpoint := fmt.Sprintf("%s/coins/markets", c.cfg.BaseURL)
	params := url.Values{
		"vs_currency": {currency},
		"order":       {"market_cap_desc"},
		"per_page":    {fmt.Sprintf("%d", topCoins)},
		"page":        {"1"},
	}

	var coins []models.Coin
	if err := c.doGet(ctx, endpoint, params, &coins); err != nil {
		return nil, fmt.Errorf("fetching markets for %s: %w", currency, err)
	}

	return coins, nil
}

// OHLC fetches historical candles for a coin over an already-snapped range.
// The raw [timestamp_ms, open, high, low, close] tuples become Candles with
// the millisecond epoch converted to a time.Time.
func (c *Client) OHLC(ctx context.Context, coinID, currency string, days models.DayRange) ([]models.Candle, error) {
	endpoint := fmt.Sprintf("%s/coins/%s/ohlc", c.cfg.BaseURL, url.PathEscape(coinID))
	params := url.Values{
		"vs_currency": {currency},
		"days":        {days.String()},
	}

	var raw [][]float64
	if err := c.doGet(ctx, endpoint, params, &raw); err != nil {
		return nil, fmt.Errorf("fetching OHLC for %s: %w", coinID, err)
	}

	candles := make([]models.Candle, 0, len(raw))
	for _, row := range raw {
		if len(row) < 5 {
			continue
		}
		candles = append(candles, models.Candle{
			Timestamp: time.UnixMilli(int64(row[0])),
			Open:      row[1],
			High:      row[2],
			Low:       row[3],
			Close:     row[4],
		})
	}

	c.logger.WithFields(logrus.Fields{
		"coin":    coinID,
		"days":    days.String(),
		"candles": len(candles),
	}).Info("Fetched OHLC data")

	return candles, nil
}

// GlobalDominance fetches the market-cap-percentage-by-symbol map from the
// /global endpoint. Values are percentages in [0,100] as upstream reports
// them; no scaling happens downstream.
func (c *Client) GlobalDominance(ctx context.Context) (map[string]float64, error) {
	endpoint := fmt.Sprintf("%s/global", c.cfg.BaseURL)

	var resp globalResponse
	if err := c.doGet(ctx, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching global market data: %w", err)
	}

	return resp.Data.MarketCapPercentage, nil
}

// doGet issues a GET through the retry policy and decodes the JSON body.
func (c *Client) doGet(ctx context.Context, endpoint string, params url.Values, result any) error {
	fullURL := endpoint
	if len(params) > 0 {
		fullURL = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	isRetryable := func(err error) bool {
		var permanent *permanentError
		return !errors.As(err, &permanent)
	}

	onRetry := func(attempt int, err error, wait time.Duration) {
		c.logger.WithFields(logrus.Fields{
			"url":     fullURL,
			"attempt": attempt,
			"backoff": wait.String(),
			"error":   err.Error(),
		}).Warn("Request failed, retrying")
	}

	_, err := retry.Do(ctx, c.policy, isRetryable, onRetry, func() (struct{}, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return struct{}{}, &permanentError{err: fmt.Errorf("rate limiter: %w", err)}
		}
		return struct{}{}, c.doSingleRequest(ctx, fullURL, result)
	})
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"url":   fullURL,
			"error": err.Error(),
		}).Error("Request failed, retries exhausted")
	}
	return err
}

func (c *Client) doSingleRequest(ctx context.Context, fullURL string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return &permanentError{err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if retryableStatuses[resp.StatusCode] {
		return fmt.Errorf("transient upstream failure (HTTP %d)", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr geckoError
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error != "" {
			return &permanentError{err: fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, apiErr.Error)}
		}
		return &permanentError{err: fmt.Errorf("client error (HTTP %d)", resp.StatusCode)}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &permanentError{err: fmt.Errorf("parsing response: %w", err)}
	}

	return nil
}

// permanentError wraps failures that must not be retried (4xx other than 429,
// malformed bodies).
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }
