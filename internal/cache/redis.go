package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/config"
)

// Redis stores snapshots in Redis so several dashboard instances can share
// one refresh window.
type Redis struct {
	client *redis.Client
	logger *logrus.Entry
	ttl    time.Duration
}

// NewRedis creates a Redis-backed snapshot cache and verifies the connection.
func NewRedis(cfg *config.RedisConfig, ttl time.Duration, log *logrus.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Redis{
		client: client,
		logger: log.WithField("component", "redis-cache"),
		ttl:    ttl,
	}, nil
}

func snapshotKey(currency string) string {
	return fmt.Sprintf("markets:%s", currency)
}

// Get returns the cached snapshot for a currency, or nil on a miss. Expiry is
// delegated to the Redis key TTL.
func (r *Redis) Get(ctx context.Context, currency string) (*Snapshot, error) {
	data, err := r.client.Get(ctx, snapshotKey(currency)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Set stores a snapshot for a currency with the configured TTL.
func (r *Redis) Set(ctx context.Context, currency string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKey(currency), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	r.logger.WithField("currency", currency).Debug("Cached market snapshot")
	return nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
