package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/models"
)

func sampleCoins() []models.Coin {
	dominance := 52.456
	return []models.Coin{
		{
			ID:                  "bitcoin",
			Symbol:              "btc",
			Name:                "Bitcoin",
			Image:               "https://img.test/btc.png",
			CurrentPrice:        45678.9,
			MarketCap:           895123456789,
			MarketCapRank:       1,
			TotalVolume:         23456789012,
			CirculatingSupply:   19600000,
			ATH:                 69000,
			ATHChangePercentage: -33.8123,
			ATHDate:             time.Date(2021, 11, 10, 14, 24, 11, 0, time.UTC),
			Dominance:           &dominance,
		},
		{
			ID:            "ethereum",
			Symbol:        "eth",
			Name:          "Ethereum",
			MarketCapRank: 2,
			CurrentPrice:  3456.78,
			ATHDate:       time.Date(2021, 11, 10, 14, 24, 19, 0, time.UTC),
		},
	}
}

func TestNormalize(t *testing.T) {
	rows := Normalize(sampleCoins(), "usd")
	require.Len(t, rows, 2)

	btc := rows[0]
	assert.Equal(t, 1, btc.Rank)
	assert.Equal(t, "Bitcoin", btc.Name)
	assert.Equal(t, "https://img.test/btc.png", btc.Logo)
	assert.Equal(t, "btc", btc.Symbol)
	assert.Equal(t, "$45,678.90", btc.Price)
	assert.Equal(t, "$895,123,456,789", btc.MarketCap)
	assert.Equal(t, "19,600,000.00", btc.CirculatingSupply)
	assert.Equal(t, "$23,456,789,012", btc.TotalVolume)
	assert.Equal(t, "$69,000.00", btc.AllTimeHigh)
	assert.Equal(t, -33.81, btc.ATHChangePct)
	assert.Equal(t, "2021-11-10", btc.ATHDate, "ATH date keeps no time component")
	require.NotNil(t, btc.Dominance)
	assert.Equal(t, 52.46, *btc.Dominance)

	// A row without a dominance match keeps nil, not zero.
	assert.Nil(t, rows[1].Dominance)
}

func TestNormalizeCurrencySymbol(t *testing.T) {
	rows := Normalize(sampleCoins(), "eur")
	assert.Equal(t, "€45,678.90", rows[0].Price)
	assert.Equal(t, "€895,123,456,789", rows[0].MarketCap)
}

func TestNormalizeIsDeterministicAndNonMutating(t *testing.T) {
	coins := sampleCoins()
	before := sampleCoins()

	first := Normalize(coins, "usd")
	second := Normalize(coins, "usd")

	assert.Equal(t, first, second, "normalizing twice must not compound formatting")
	assert.Equal(t, before, coins, "input rows must not be mutated")
}

func TestNormalizePreservesOrder(t *testing.T) {
	rows := Normalize(sampleCoins(), "usd")
	assert.Equal(t, "Bitcoin", rows[0].Name)
	assert.Equal(t, "Ethereum", rows[1].Name)
}
