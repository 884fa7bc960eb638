package api

import (
	"strings"
	"sync"
	"time"
)

// Query keys. Keys sharing a prefix are invalidated together.
const (
	QueryMyBookings   = "bookings:mine"
	QueryRefreshments = "refreshments"
)

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// QueryCache memoises read results by key until they expire or are
// invalidated.
type QueryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewQueryCache(ttl time.Duration) *QueryCache {
	return &QueryCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (q *QueryCache) Get(key string) (any, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.entries[key]
	if !ok {
		return nil, false
	}
	if q.now().After(e.expiresAt) {
		delete(q.entries, key)
		return nil, false
	}
	return e.value, true
}

func (q *QueryCache) Set(key string, value any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries[key] = cacheEntry{value: value, expiresAt: q.now().Add(q.ttl)}
}

// Invalidate drops every entry whose key starts with prefix.
func (q *QueryCache) Invalidate(prefix string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for key := range q.entries {
		if strings.HasPrefix(key, prefix) {
			delete(q.entries, key)
		}
	}
}

// cached serves key from q or stores the result of fetch under it.
// Failed fetches are not cached.
func cached[T any](q *QueryCache, key string, fetch func() (T, error)) (T, error) {
	if v, ok := q.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}
	q.Set(key, v)
	return v, nil
}
