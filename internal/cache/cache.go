// Package cache stores live-market snapshots per currency with a short TTL,
// so the dashboard makes at most one upstream fetch per currency per refresh
// window. Failed fetches are never stored.
package cache

import (
	"context"
	"time"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/models"
)

// Snapshot is one cached live-market table for a currency.
type Snapshot struct {
	Coins     []models.Coin `json:"coins"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// SnapshotCache is the snapshot store. Get returns (nil, nil) on a miss or an
// expired entry.
type SnapshotCache interface {
	Get(ctx context.Context, currency string) (*Snapshot, error)
	Set(ctx context.Context, currency string, snap *Snapshot) error
	Close() error
}
