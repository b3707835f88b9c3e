package market

import (
	"math"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/models"
)

// DisplayRow is one display-ready row of the live table. Field order is the
// column order; JSON keys are the display labels.
type DisplayRow struct {
	Rank              int      `json:"Rank"`
	Name              string   `json:"Name"`
	Logo              string   `json:"Logo"`
	Symbol            string   `json:"Symbol"`
	Price             string   `json:"Price"`
	MarketCap         string   `json:"Market Cap"`
	Dominance         *float64 `json:"Dominance (%)"`
	CirculatingSupply string   `json:"Circulating Supply"`
	TotalVolume       string   `json:"Total Volume"`
	AllTimeHigh       string   `json:"All Time High"`
	ATHChangePct      float64  `json:"ATH Change (%)"`
	ATHDate           string   `json:"ATH Date"`
}

// Normalize turns raw market rows into the display table: fixed column
// selection and labels, currency-aware formatting, ATH date reduced to a
// calendar date. The input is not mutated and the output is deterministic,
// so renormalizing never compounds formatting.
func Normalize(coins []models.Coin, currency string) []DisplayRow {
	rows := make([]DisplayRow, 0, len(coins))
	for _, coin := range coins {
		row := DisplayRow{
			Rank:              coin.MarketCapRank,
			Name:              coin.Name,
			Logo:              coin.Image,
			Symbol:            coin.Symbol,
			Price:             FormatPrice(coin.CurrentPrice, currency),
			MarketCap:         FormatAmount(coin.MarketCap, currency),
			CirculatingSupply: FormatSupply(coin.CirculatingSupply),
			TotalVolume:       FormatAmount(coin.TotalVolume, currency),
			AllTimeHigh:       FormatPrice(coin.ATH, currency),
			ATHChangePct:      round2(coin.ATHChangePercentage),
			ATHDate:           coin.ATHDate.Format("2006-01-02"),
		}
		if coin.Dominance != nil {
			pct := round2(*coin.Dominance)
			row.Dominance = &pct
		}
		rows = append(rows, row)
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
