package market

import (
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/models"
)

// PeriodSummary are the headline metrics for a candle series: latest close,
// change from the period's first open, and the period extremes.
type PeriodSummary struct {
	LatestClose float64 `json:"latest_close"`
	Change      float64 `json:"change"`
	ChangePct   float64 `json:"change_pct"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
}

// Summarize computes the period metrics over a chronologically ordered candle
// series. An empty series yields a zero summary.
func Summarize(candles []models.Candle) PeriodSummary {
	if len(candles) == 0 {
		return PeriodSummary{}
	}

	first := candles[0]
	last := candles[len(candles)-1]

	summary := PeriodSummary{
		LatestClose: last.Close,
		Change:      last.Close - first.Open,
		High:        first.High,
		Low:         first.Low,
	}
	if first.Open != 0 {
		summary.ChangePct = round2(summary.Change / first.Open * 100)
	}

	for _, c := range candles[1:] {
		if c.High > summary.High {
			summary.High = c.High
		}
		if c.Low < summary.Low {
			summary.Low = c.Low
		}
	}

	return summary
}
