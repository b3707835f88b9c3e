package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/app"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/config"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/logger"
)

var (
	serverPort int
	serverHost string
	logLevel   string
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the dashboard HTTP API",
	Long: `Start the dashboard backend server.

Endpoints:
  GET  /api/v1/health
  GET  /api/v1/markets?currency=usd
  GET  /api/v1/coins/{id}/ohlc?currency=usd&days=30
  GET  /api/v1/dominance
  POST /api/v1/chat

Examples:
  dashboard server                  # Start with default settings
  dashboard server --port 9090      # Start on a custom port
  dashboard server --log-level debug`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "Server port")
	serverCmd.Flags().StringVarP(&serverHost, "host", "H", "", "Server host")
	serverCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, fileResult, err := loadConfig()
	if err != nil {
		return err
	}

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	// The config file is optional; say so once and move on.
	if fileResult.UsedDefault {
		log.Warn("Config file not found. Using defaults.")
	} else {
		log.WithField("path", fileResult.Path).Info("Loaded config file")
	}

	log.Info("Starting cryptocurrency market dashboard")

	application := app.New(cfg, log)
	if err := application.Initialize(); err != nil {
		log.WithError(err).Error("Failed to initialize application")
		return err
	}
	if err := application.Start(); err != nil {
		log.WithError(err).Error("Failed to start application")
		return err
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-interrupt:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	case err := <-application.ServerErr():
		if err != nil {
			log.WithError(err).Error("HTTP server failed")
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := application.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("Application shutdown error")
		return err
	}

	log.Info("Application shutdown complete")
	return nil
}

// loadConfig loads .env, environment config, and the optional JSON file.
func loadConfig() (*config.Config, config.FileResult, error) {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Printf("Note: .env file not loaded: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, config.FileResult{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	fileResult, err := config.LoadFile(configFile)
	if err != nil {
		return nil, config.FileResult{}, err
	}
	cfg.ApplyFile(fileResult)

	return cfg, fileResult, nil
}
