package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	perr "diwan/internal/platform/errors"

	"golang.org/x/time/rate"
)

// RateLimitOptions configures a per-client token bucket
type RateLimitOptions struct {
	// PerMinute is the sustained rate; <= 0 disables the limiter
	PerMinute int
	// Burst defaults to PerMinute
	Burst int
	// KeyFn picks the bucket; defaults to keyByIP
	KeyFn func(*http.Request) string
	// IdleTTL drops buckets unused for this long; defaults to 10m
	IdleTTL time.Duration
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// limiter keeps one token bucket per key
type limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	opt     RateLimitOptions
	now     func() time.Time
	swept   time.Time
}

// newLimiter builds a limiter; returns nil when disabled
func newLimiter(o RateLimitOptions) *limiter {
	if o.PerMinute <= 0 {
		return nil
	}
	if o.Burst <= 0 {
		o.Burst = o.PerMinute
	}
	if o.KeyFn == nil {
		o.KeyFn = keyByIP
	}
	if o.IdleTTL <= 0 {
		o.IdleTTL = 10 * time.Minute
	}
	return &limiter{buckets: map[string]*bucket{}, opt: o, now: time.Now}
}

// Allow reports whether a request for key may proceed
func (rl *limiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rate.Limit(float64(rl.opt.PerMinute)/60), rl.opt.Burst)}
		rl.buckets[key] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

// sweep drops idle buckets at most once per IdleTTL; caller holds mu
func (rl *limiter) sweep(now time.Time) {
	if now.Sub(rl.swept) < rl.opt.IdleTTL {
		return
	}
	rl.swept = now
	for k, b := range rl.buckets {
		if now.Sub(b.seen) >= rl.opt.IdleTTL {
			delete(rl.buckets, k)
		}
	}
}

// Handler enforces the limit and answers 429 in the standard envelope
// a nil limiter passes everything through
func (rl *limiter) Handler(next http.Handler) http.Handler {
	if rl == nil {
		return next
	}
	retry := strconv.Itoa(int((time.Minute / time.Duration(rl.opt.PerMinute)).Seconds()) + 1)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.Allow(rl.opt.KeyFn(r)) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Retry-After", retry)
		writeError(w, r, perr.New(perr.ErrorCodeTooManyRequests, "too many requests"))
	})
}

// RateLimit is the middleware form of newLimiter(o).Handler
func RateLimit(o RateLimitOptions) func(http.Handler) http.Handler {
	return newLimiter(o).Handler
}

// keyByIP keys on the client address; pair with RealIP behind proxies
func keyByIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}
