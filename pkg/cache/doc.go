// Package cache provides a generic thread-safe LRU cache and a Loader that
// fills it on demand.
//
// LRU evicts the least recently used item once its capacity is reached. An
// optional eviction callback observes every evicted or removed item.
//
// Loader wraps a string-keyed LRU with golang.org/x/sync/singleflight, so a
// burst of concurrent misses for one key runs the load function exactly once:
//
//	results := cache.NewLoader[Result](512)
//	res, cached, err := results.GetOrLoad(ctx, report.Fingerprint(), func(ctx context.Context) (Result, error) {
//		return detect(ctx, report)
//	})
//
// Errors returned by the load function are passed to every waiting caller
// and are never cached.
package cache
