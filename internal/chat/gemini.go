// Package chat forwards free-text questions plus a serialized market snapshot
// to Google's Gemini API. The collaborator is opaque: it receives context and
// a question, returns text, and is told never to attempt currency conversion.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/market"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/config"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/models"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/retry"
)

// ErrUnavailable means the chat feature is not configured (no API key).
var ErrUnavailable = errors.New("chat service is not configured")

// Client calls the Gemini generateContent endpoint.
type Client struct {
	cfg        config.ChatConfig
	httpClient *http.Client
	logger     *logrus.Entry
	policy     retry.Policy
}

// NewClient creates a Gemini chat client. An empty API key produces a client
// whose Ask always reports ErrUnavailable.
func NewClient(cfg config.ChatConfig, log *logrus.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log.WithField("component", "chat"),
		policy:     retry.DefaultPolicy(),
	}
}

// Available reports whether the chat feature is configured.
func (c *Client) Available() bool {
	return c.cfg.APIKey != ""
}

// Ask sends the question with the market snapshot as context and returns the
// model's answer.
func (c *Client) Ask(ctx context.Context, question string, coins []models.Coin, currency string) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}

	prompt := buildPrompt(question, coins, currency)
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)

	reqBody, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	isRetryable := func(err error) bool {
		var permanent *permanentError
		return !errors.As(err, &permanent)
	}

	onRetry := func(attempt int, err error, wait time.Duration) {
		c.logger.WithFields(logrus.Fields{
			"attempt": attempt,
			"backoff": wait.String(),
			"error":   err.Error(),
		}).Warn("Chat request failed, retrying")
	}

	answer, err := retry.Do(ctx, c.policy, isRetryable, onRetry, func() (string, error) {
		return c.doRequest(ctx, endpoint, reqBody)
	})
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	return answer, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &permanentError{err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", fmt.Errorf("transient upstream failure (HTTP %d)", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", &permanentError{err: fmt.Errorf("chat API error (HTTP %d)", resp.StatusCode)}
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &permanentError{err: fmt.Errorf("parsing response: %w", err)}
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &permanentError{err: errors.New("empty chat response")}
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// buildPrompt serializes the live table and pins the answer to the selected
// currency.
func buildPrompt(question string, coins []models.Coin, currency string) string {
	var b strings.Builder

	b.WriteString(BuildMarketContext(coins, currency))
	b.WriteString("\n\nUser question: ")
	b.WriteString(question)
	b.WriteString("\n\nInstructions:\n")
	b.WriteString("- Answer based on the provided data and your general knowledge about cryptocurrencies.\n")
	fmt.Fprintf(&b, "- The data above is in %s. If the user asks for prices in another currency, DO NOT perform any conversion. Instead, politely explain that the dashboard only displays prices in the selected currency and advise them to change the currency in the settings.\n", strings.ToUpper(currency))
	b.WriteString("- If the question is unclear, ask for clarification.\n")
	b.WriteString("- Use the data to support your answers, and indicate when you are using general knowledge.")

	return b.String()
}

// BuildMarketContext renders the snapshot as plain text for the model.
func BuildMarketContext(coins []models.Coin, currency string) string {
	if len(coins) == 0 {
		return "No market data available."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CURRENT MARKET DATA (top %d by market cap) - All prices are in %s.\n\n", len(coins), strings.ToUpper(currency))
	b.WriteString("name | symbol | current_price | market_cap | total_volume | change_24h\n")
	for _, coin := range coins {
		fmt.Fprintf(&b, "%s | %s | %s | %s | %s | %.2f%%\n",
			coin.Name,
			coin.Symbol,
			market.FormatPrice(coin.CurrentPrice, currency),
			market.FormatAmount(coin.MarketCap, currency),
			market.FormatAmount(coin.TotalVolume, currency),
			coin.PriceChangePct24h,
		)
	}
	fmt.Fprintf(&b, "\nIMPORTANT: The data above is only available in %s. If the user asks for prices in a different currency, politely explain that the dashboard only displays data in the current currency and suggest they change it in the settings. Do NOT attempt conversions.", strings.ToUpper(currency))

	return b.String()
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// permanentError wraps failures that must not be retried.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }
