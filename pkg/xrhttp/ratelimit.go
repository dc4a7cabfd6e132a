package xrhttp

import (
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/xrcaps/pkg/cache"
)

// Rate limit response headers.
const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
	HeaderRetryAfter    = "Retry-After"
)

const defaultRateClients = 10_000

// ErrTooManyRequests is returned when a client exceeds its request budget.
var ErrTooManyRequests = HTTPError{Status: http.StatusTooManyRequests, Code: "too_many_requests"}

// clientLimiter keeps one token bucket per client address. Buckets of the
// least recently seen clients are dropped once the table is full.
type clientLimiter struct {
	limit   rate.Limit
	burst   int
	trusted []netip.Prefix

	mu      sync.Mutex
	buckets *cache.LRU[string, *rate.Limiter]
}

func newClientLimiter(perSecond float64, burst, clients int, trusted []netip.Prefix) *clientLimiter {
	if burst <= 0 {
		burst = max(1, int(math.Ceil(perSecond)))
	}
	return &clientLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		trusted: trusted,
		buckets: cache.NewLRU[string, *rate.Limiter](clients),
	}
}

func (l *clientLimiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets.Get(key); ok {
		return b
	}
	b := rate.NewLimiter(l.limit, l.burst)
	l.buckets.Put(key, b)
	return b
}

// allow consumes one token for key. When refused it returns how long the
// client should wait.
func (l *clientLimiter) allow(key string, now time.Time) (remaining int, retryAfter time.Duration, ok bool) {
	b := l.bucket(key)

	r := b.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return 0, delay, false
	}
	return max(0, int(b.TokensAt(now))), 0, true
}

// middleware rejects clients that exceed their budget with 429.
func (l *clientLimiter) middleware(h *Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remaining, retryAfter, ok := l.allow(clientIP(r, l.trusted), time.Now())

			w.Header().Set(HeaderRateLimit, strconv.Itoa(l.burst))
			w.Header().Set(HeaderRateRemaining, strconv.Itoa(remaining))
			if !ok {
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				h.wrap(func(http.ResponseWriter, *http.Request) error { return ErrTooManyRequests })(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the address a request originated from. Proxy headers are
// honoured only when the connection comes from a trusted network: then
// X-Forwarded-For is read from the right, skipping trusted hops, and
// X-Real-IP is the fallback. Otherwise the remote address is used as is.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	remote := remoteAddr(r.RemoteAddr)
	if !remote.IsValid() {
		return r.RemoteAddr
	}
	if !isTrusted(remote, trusted) {
		return remote.String()
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			addr, ok := parseAddr(hops[i])
			if !ok {
				// Entries left of a malformed hop cannot be attributed.
				break
			}
			if !isTrusted(addr, trusted) {
				return addr.String()
			}
		}
	}
	if addr, ok := parseAddr(r.Header.Get("X-Real-IP")); ok {
		return addr.String()
	}
	return remote.String()
}

func remoteAddr(s string) netip.Addr {
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}
	addr, _ := parseAddr(s)
	return addr
}

func parseAddr(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

func isTrusted(addr netip.Addr, trusted []netip.Prefix) bool {
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
