package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/models"
)

func TestMemoryGetMiss(t *testing.T) {
	m := NewMemory(time.Minute)
	snap, err := m.Get(context.Background(), "usd")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestMemorySetGet(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()

	want := &Snapshot{
		Coins:     []models.Coin{{ID: "bitcoin", Symbol: "btc"}},
		FetchedAt: time.Now(),
	}
	require.NoError(t, m.Set(ctx, "usd", want))

	got, err := m.Get(ctx, "usd")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bitcoin", got.Coins[0].ID)

	// Other currencies are independent keys.
	other, err := m.Get(ctx, "eur")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "usd", &Snapshot{FetchedAt: time.Now()}))

	got, err := m.Get(ctx, "usd")
	require.NoError(t, err)
	require.NotNil(t, got)

	time.Sleep(20 * time.Millisecond)

	got, err = m.Get(ctx, "usd")
	require.NoError(t, err)
	assert.Nil(t, got, "entries past the TTL must read as a miss")
}
