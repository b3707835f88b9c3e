package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/config"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testCoins() []models.Coin {
	return []models.Coin{
		{Name: "Bitcoin", Symbol: "btc", CurrentPrice: 45678.9, MarketCap: 895123456789, TotalVolume: 23456789012, PriceChangePct24h: 1.234},
	}
}

func TestBuildMarketContext(t *testing.T) {
	ctx := BuildMarketContext(testCoins(), "usd")

	assert.Contains(t, ctx, "All prices are in USD")
	assert.Contains(t, ctx, "Bitcoin")
	assert.Contains(t, ctx, "$45,678.90")
	assert.Contains(t, ctx, "$895,123,456,789")
	assert.Contains(t, ctx, "1.23%")
	assert.Contains(t, ctx, "Do NOT attempt conversions")
}

func TestBuildMarketContextEmpty(t *testing.T) {
	assert.Equal(t, "No market data available.", BuildMarketContext(nil, "usd"))
}

func TestAskUnavailableWithoutAPIKey(t *testing.T) {
	client := NewClient(config.ChatConfig{}, quietLogger())
	assert.False(t, client.Available())

	_, err := client.Ask(context.Background(), "what is up?", testCoins(), "usd")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAskReturnsAnswer(t *testing.T) {
	var gotPrompt atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt.Store(req.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "Bitcoin leads the market."}]}}]}`))
	}))
	defer server.Close()

	client := NewClient(config.ChatConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	}, quietLogger())
	client.policy.InitialBackoff = time.Millisecond
	client.policy.MaxBackoff = time.Millisecond

	answer, err := client.Ask(context.Background(), "Which coin leads?", testCoins(), "usd")
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin leads the market.", answer)

	prompt := gotPrompt.Load().(string)
	assert.Contains(t, prompt, "User question: Which coin leads?")
	assert.Contains(t, prompt, "DO NOT perform any conversion")
}

func TestAskRetriesTransientFailures(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "ok"}]}}]}`))
	}))
	defer server.Close()

	client := NewClient(config.ChatConfig{APIKey: "k", Model: "m", BaseURL: server.URL}, quietLogger())
	client.policy.InitialBackoff = time.Millisecond
	client.policy.MaxBackoff = time.Millisecond

	answer, err := client.Ask(context.Background(), "q", nil, "usd")
	require.NoError(t, err)
	assert.Equal(t, "ok", answer)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestAskDoesNotRetryClientError(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(config.ChatConfig{APIKey: "k", Model: "m", BaseURL: server.URL}, quietLogger())
	client.policy.InitialBackoff = time.Millisecond

	_, err := client.Ask(context.Background(), "q", nil, "usd")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
