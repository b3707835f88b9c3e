package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/cache"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/coingecko"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/market"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/logger"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/models"
)

var (
	ohlcCurrency string
	ohlcDays     string
)

// ohlcCmd represents the ohlc command
var ohlcCmd = &cobra.Command{
	Use:   "ohlc <coin-id>",
	Short: "Fetch and print historical OHLC candles for a coin",
	Long: `Fetch open/high/low/close candles for a coin over a period.

The period snaps to the nearest interval CoinGecko supports
(1, 7, 14, 30, 90, 180 or 365 days), or "max" for the full history.

Examples:
  dashboard ohlc bitcoin
  dashboard ohlc ethereum --days 90 --currency eur
  dashboard ohlc bitcoin --days max`,
	Args: cobra.ExactArgs(1),
	RunE: runOHLC,
}

func init() {
	rootCmd.AddCommand(ohlcCmd)

	ohlcCmd.Flags().StringVar(&ohlcCurrency, "currency", "usd", "Quote currency (usd, eur, gbp, ...)")
	ohlcCmd.Flags().StringVar(&ohlcDays, "days", "30", "Period in days, or \"max\"")
}

func runOHLC(cmd *cobra.Command, args []string) error {
	coinID := args[0]

	days, err := models.ParseDayRange(ohlcDays)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	gecko := coingecko.NewClient(cfg.CoinGecko, log)
	svc := market.NewService(gecko, cache.NewMemory(cfg.Cache.TTL), log)

	result := svc.Candles(ctx, coinID, ohlcCurrency, days)
	switch {
	case result.IsFailed():
		return fmt.Errorf("ohlc fetch failed: %w", result.Err())
	case result.IsEmpty():
		fmt.Printf("No historical data found for %s.\n", coinID)
		return nil
	}

	candles := result.Value()
	summary := market.Summarize(candles)

	fmt.Printf("%s / %s over %s days (%d candles)\n", coinID, ohlcCurrency, days.String(), len(candles))
	fmt.Printf("latest close %s  change %s (%.2f%%)  high %s  low %s\n\n",
		market.FormatPrice(summary.LatestClose, ohlcCurrency),
		market.FormatPrice(summary.Change, ohlcCurrency),
		summary.ChangePct,
		market.FormatPrice(summary.High, ohlcCurrency),
		market.FormatPrice(summary.Low, ohlcCurrency))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Time\tOpen\tHigh\tLow\tClose")
	for _, c := range candles {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
			c.Timestamp.Format("2006-01-02 15:04"), c.Open, c.High, c.Low, c.Close)
	}
	return w.Flush()
}
