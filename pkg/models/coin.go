package models

import (
	"time"
)

// Coin represents one row of the CoinGecko /coins/markets response.
// Rows arrive ordered by descending market cap and are never reordered.
type Coin struct {
	ID                  string    `json:"id"`
	Symbol              string    `json:"symbol"`
	Name                string    `json:"name"`
	Image               string    `json:"image"`
	CurrentPrice        float64   `json:"current_price"`
	MarketCap           float64   `json:"market_cap"`
	MarketCapRank       int       `json:"market_cap_rank"`
	TotalVolume         float64   `json:"total_volume"`
	CirculatingSupply   float64   `json:"circulating_supply"`
	PriceChange24h      float64   `json:"price_change_24h"`
	PriceChangePct24h   float64   `json:"price_change_percentage_24h"`
	ATH                 float64   `json:"ath"`
	ATHChangePercentage float64   `json:"ath_change_percentage"`
	ATHDate             time.Time `json:"ath_date"`

	// Dominance is the coin's share of total market cap in percent (0-100),
	// joined from the /global endpoint by lowercased symbol. Nil when the
	// dominance fetch failed or the symbol had no match.
	Dominance *float64 `json:"dominance,omitempty"`
}
