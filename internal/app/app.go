// Package app wires the dashboard components together.
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/api"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/cache"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/chat"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/coingecko"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/market"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/config"
)

// App represents the main application
type App struct {
	cfg    *config.Config
	logger *logrus.Logger

	snapshots cache.SnapshotCache
	gecko     *coingecko.Client
	market    *market.Service
	chat      *chat.Client
	apiServer *api.Server

	serverErr chan error
}

// New creates a new application instance
func New(cfg *config.Config, log *logrus.Logger) *App {
	return &App{
		cfg:       cfg,
		logger:    log,
		serverErr: make(chan error, 1),
	}
}

// Initialize builds all application components
func (a *App) Initialize() error {
	if err := a.initializeCache(); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	a.gecko = coingecko.NewClient(a.cfg.CoinGecko, a.logger)
	a.market = market.NewService(a.gecko, a.snapshots, a.logger)
	a.chat = chat.NewClient(a.cfg.Chat, a.logger)
	a.apiServer = api.NewServer(a.cfg, a.logger, a.market, a.chat)

	if !a.chat.Available() {
		a.logger.Info("Chat API key not set, chat endpoint disabled")
	}

	return nil
}

func (a *App) initializeCache() error {
	switch a.cfg.Cache.Backend {
	case "redis":
		redisCache, err := cache.NewRedis(&a.cfg.Redis, a.cfg.Cache.TTL, a.logger)
		if err != nil {
			return err
		}
		a.snapshots = redisCache
		a.logger.WithField("addr", a.cfg.GetRedisAddr()).Info("Using Redis snapshot cache")
	default:
		a.snapshots = cache.NewMemory(a.cfg.Cache.TTL)
		a.logger.WithField("ttl", a.cfg.Cache.TTL.String()).Info("Using in-memory snapshot cache")
	}
	return nil
}

// Start starts the HTTP server in the background.
func (a *App) Start() error {
	go func() {
		a.serverErr <- a.apiServer.Start()
	}()
	return nil
}

// ServerErr reports a fatal server failure, if any.
func (a *App) ServerErr() <-chan error {
	return a.serverErr
}

// Stop gracefully stops the application
func (a *App) Stop(ctx context.Context) error {
	if err := a.apiServer.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}
	if err := a.snapshots.Close(); err != nil {
		a.logger.WithError(err).Warn("Failed to close snapshot cache")
	}
	return nil
}
