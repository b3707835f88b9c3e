package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is the default in-process snapshot store.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	snap      *Snapshot
	expiresAt time.Time
}

// NewMemory creates an in-memory snapshot cache with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached snapshot for a currency, or nil when missing or
// expired.
func (m *Memory) Get(_ context.Context, currency string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[currency]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.entries, currency)
		return nil, nil
	}
	return entry.snap, nil
}

// Set stores a snapshot for a currency.
func (m *Memory) Set(_ context.Context, currency string, snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[currency] = memoryEntry{
		snap:      snap,
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error { return nil }
