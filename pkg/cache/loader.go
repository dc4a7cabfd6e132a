package cache

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// LoadFunc computes the value for a missing key.
type LoadFunc[V any] func(ctx context.Context) (V, error)

// Stats counts cache lookups made through a Loader.
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Shared    uint64 `json:"shared"`
	Evictions uint64 `json:"evictions"` // dropped for capacity or by Purge
	Size      int    `json:"size"`
}

// Loader is a string-keyed LRU that computes missing values on demand.
// Concurrent misses for the same key run the load function once and share
// its result. Failed loads are not cached.
type Loader[V any] struct {
	lru    *LRU[string, V]
	group  singleflight.Group
	hits   atomic.Uint64
	misses atomic.Uint64
	shared atomic.Uint64
	evicts atomic.Uint64
}

// NewLoader creates a Loader holding at most capacity values.
// It panics if capacity is not positive.
func NewLoader[V any](capacity int) *Loader[V] {
	l := &Loader[V]{lru: NewLRU[string, V](capacity)}
	l.lru.OnEvict(func(string, V) { l.evicts.Add(1) })
	return l
}

// GetOrLoad returns the cached value for key or computes it with load.
// The boolean reports whether the value came from the cache.
func (l *Loader[V]) GetOrLoad(ctx context.Context, key string, load LoadFunc[V]) (V, bool, error) {
	if v, ok := l.lru.Get(key); ok {
		l.hits.Add(1)
		return v, true, nil
	}
	l.misses.Add(1)

	res, err, shared := l.group.Do(key, func() (any, error) {
		// Another caller may have filled the key between Get and Do.
		if v, ok := l.lru.Get(key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return v, err
		}
		l.lru.Put(key, v)
		return v, nil
	})
	if shared {
		l.shared.Add(1)
	}
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.(V), false, nil
}

// Purge drops every cached value.
func (l *Loader[V]) Purge() { l.lru.Clear() }

// Stats returns a snapshot of the lookup counters.
func (l *Loader[V]) Stats() Stats {
	return Stats{
		Hits:      l.hits.Load(),
		Misses:    l.misses.Load(),
		Shared:    l.shared.Load(),
		Evictions: l.evicts.Load(),
		Size:      l.lru.Len(),
	}
}
