package repo

import (
	"context"
	"sync"
	"time"

	"github.com/Vagvedi/gitrekt/internal/core/roast"
)

type memEntry struct {
	report  roast.Report
	expires time.Time
}

// Memory is a process local TTL cache with lazy expiry
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	items   map[string]memEntry
	now     func() time.Time
	sweepAt int
}

// NewMemory returns an empty memory cache, ttl <= 0 uses DefaultTTL
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{ttl: ttl, items: map[string]memEntry{}, now: time.Now, sweepAt: 256}
}

// Get returns a live entry, expired entries are dropped on read
func (m *Memory) Get(_ context.Context, key string) (roast.Report, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[key]
	if !ok {
		return roast.Report{}, false, nil
	}
	if !m.now().Before(e.expires) {
		delete(m.items, key)
		return roast.Report{}, false, nil
	}
	return e.report, true, nil
}

// Set stores r for the cache ttl
func (m *Memory) Set(_ context.Context, key string, r roast.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if len(m.items) >= m.sweepAt {
		for k, e := range m.items {
			if !now.Before(e.expires) {
				delete(m.items, k)
			}
		}
		// grow the threshold so a full cache of live entries is not swept on every write
		m.sweepAt = max(m.sweepAt, 2*len(m.items))
	}
	m.items[key] = memEntry{report: r, expires: now.Add(m.ttl)}
	return nil
}

// Ping always succeeds
func (m *Memory) Ping(context.Context) error { return nil }

// Len reports the number of stored entries, expired or not
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
