package models

import (
	"time"
)

// Candle represents one OHLC interval from the CoinGecko /coins/{id}/ohlc
// endpoint. The interval width depends on the requested day range (finer near
// 1 day, coarser near 365 days). Bounds are upstream-guaranteed and not
// validated locally.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
}
