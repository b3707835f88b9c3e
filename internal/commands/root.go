package commands

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Cryptocurrency Market Dashboard backend",
	Long: `Backend for the cryptocurrency market dashboard.

It polls the CoinGecko API for live prices and historical OHLC data,
joins global dominance percentages onto the live table, caches snapshots
per currency, and serves everything over a JSON HTTP API. With a Gemini
API key configured it also answers free-text questions about the
current market.`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to JSON config file (default config/config.json)")
}
