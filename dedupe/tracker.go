package dedupe

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Defaults for the recurrence cache.
const (
	// DefaultSize bounds the number of distinct fingerprints tracked.
	DefaultSize = 1024

	// DefaultTTL is how long a fingerprint's count survives without a new
	// occurrence.
	DefaultTTL = 10 * time.Minute
)

// Tracker counts recent occurrences per fingerprint. Safe for concurrent
// use; observations for the same fingerprint are serialized.
type Tracker struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, int]
}

// NewTracker builds a tracker. Non-positive size or ttl fall back to the
// defaults.
func NewTracker(size int, ttl time.Duration) *Tracker {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tracker{
		cache: expirable.NewLRU[string, int](size, nil, ttl),
	}
}

// Observe records one occurrence of the fingerprint and returns the total
// seen within the TTL, including this one.
func (t *Tracker) Observe(fingerprint string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count, _ := t.cache.Get(fingerprint)
	count++
	t.cache.Add(fingerprint, count)
	return count
}

// Len returns the number of distinct fingerprints currently tracked.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cache.Len()
}
