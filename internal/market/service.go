// Package market is the application core: it coordinates upstream fetches,
// the snapshot cache, the dominance join, and display normalization.
package market

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/cache"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/models"
)

// Source is the upstream market-data API.
type Source interface {
	MarketsTop10(ctx context.Context, currency string) ([]models.Coin, error)
	OHLC(ctx context.Context, coinID, currency string, days models.DayRange) ([]models.Candle, error)
	GlobalDominance(ctx context.Context) (map[string]float64, error)
}

// Service serves live and historical market data. Live snapshots are cached
// per currency; population is serialized so one refresh window means one
// upstream fetch per currency.
type Service struct {
	source    Source
	snapshots cache.SnapshotCache
	logger    *logrus.Entry

	// populate serializes cache misses.
	populate sync.Mutex
}

// NewService creates the market service.
func NewService(source Source, snapshots cache.SnapshotCache, log *logrus.Logger) *Service {
	return &Service{
		source:    source,
		snapshots: snapshots,
		logger:    log.WithField("component", "market"),
	}
}

// LiveMarket returns the top-10 live table for a currency, augmented with
// dominance percentages. A failed fetch yields a Failed result; callers show
// the rate-limit warning for it, never an empty table.
func (s *Service) LiveMarket(ctx context.Context, currency string) models.Result[[]models.Coin] {
	currency = strings.ToLower(currency)

	if snap := s.cached(ctx, currency); snap != nil {
		return models.Ok(snap.Coins)
	}

	s.populate.Lock()
	defer s.populate.Unlock()

	// Someone else may have populated while we waited for the lock.
	if snap := s.cached(ctx, currency); snap != nil {
		return models.Ok(snap.Coins)
	}

	coins, err := s.source.MarketsTop10(ctx, currency)
	if err != nil {
		s.logger.WithError(err).WithField("currency", currency).Error("Error fetching live cryptocurrency data")
		return models.Fail[[]models.Coin](err)
	}
	if len(coins) == 0 {
		return models.Empty[[]models.Coin]()
	}

	s.augmentDominance(ctx, coins)

	if err := s.snapshots.Set(ctx, currency, &cache.Snapshot{Coins: coins, FetchedAt: time.Now()}); err != nil {
		s.logger.WithError(err).Warn("Failed to cache market snapshot")
	}

	return models.Ok(coins)
}

// Candles returns the OHLC series for a coin over an already-snapped range.
// An upstream failure is Failed; a coin with no history is Empty, so the UI
// can show "no historical data" instead of the rate-limit warning.
func (s *Service) Candles(ctx context.Context, coinID, currency string, days models.DayRange) models.Result[[]models.Candle] {
	candles, err := s.source.OHLC(ctx, coinID, strings.ToLower(currency), days)
	if err != nil {
		s.logger.WithError(err).WithField("coin", coinID).Error("Error fetching candlestick data")
		return models.Fail[[]models.Candle](err)
	}
	if len(candles) == 0 {
		return models.Empty[[]models.Candle]()
	}
	return models.Ok(candles)
}

// Dominance returns the global market-cap-percentage map keyed by lowercased
// symbol.
func (s *Service) Dominance(ctx context.Context) models.Result[map[string]float64] {
	dominance, err := s.source.GlobalDominance(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Error fetching global market data")
		return models.Fail[map[string]float64](err)
	}
	if len(dominance) == 0 {
		return models.Empty[map[string]float64]()
	}

	lowered := make(map[string]float64, len(dominance))
	for symbol, pct := range dominance {
		lowered[strings.ToLower(symbol)] = pct
	}
	return models.Ok(lowered)
}

// augmentDominance left-joins the dominance map onto the live rows by
// lowercased symbol. Unmatched rows keep a nil dominance. A fetch failure
// here only drops the dominance column; it never fails the live fetch.
func (s *Service) augmentDominance(ctx context.Context, coins []models.Coin) {
	dominance, err := s.source.GlobalDominance(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Dominance fetch failed, continuing without dominance column")
		return
	}

	bySymbol := make(map[string]float64, len(dominance))
	for symbol, pct := range dominance {
		bySymbol[strings.ToLower(symbol)] = pct
	}

	for i := range coins {
		if pct, ok := bySymbol[strings.ToLower(coins[i].Symbol)]; ok {
			value := pct
			coins[i].Dominance = &value
		}
	}
}

func (s *Service) cached(ctx context.Context, currency string) *cache.Snapshot {
	snap, err := s.snapshots.Get(ctx, currency)
	if err != nil {
		s.logger.WithError(err).Warn("Snapshot cache read failed")
		return nil
	}
	return snap
}
