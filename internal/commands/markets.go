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
)

var marketsCurrency string

// marketsCmd represents the markets command
var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "Fetch and print the live market table",
	Long: `Fetch the top coins by market cap from CoinGecko, join global
dominance percentages, and print the normalized table.

Examples:
  dashboard markets
  dashboard markets --currency eur`,
	RunE: runMarkets,
}

func init() {
	rootCmd.AddCommand(marketsCmd)

	marketsCmd.Flags().StringVar(&marketsCurrency, "currency", "usd", "Quote currency (usd, eur, gbp, ...)")
}

func runMarkets(cmd *cobra.Command, args []string) error {
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

	result := svc.LiveMarket(ctx, marketsCurrency)
	switch {
	case result.IsFailed():
		return fmt.Errorf("market fetch failed: %w", result.Err())
	case result.IsEmpty():
		fmt.Println("No market data returned.")
		return nil
	}

	rows := market.Normalize(result.Value(), marketsCurrency)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tName\tSymbol\tPrice\tMarket Cap\tDominance (%)\t24h %")
	for i, row := range rows {
		dominance := "-"
		if row.Dominance != nil {
			dominance = fmt.Sprintf("%.2f", *row.Dominance)
		}
		coin := result.Value()[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%.2f\n",
			row.Rank, row.Name, row.Symbol, row.Price, row.MarketCap, dominance, coin.PriceChangePct24h)
	}
	return w.Flush()
}
