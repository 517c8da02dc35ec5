package httpkit

import (
	"net/http"
	"strconv"
	"time"

	"diwan/internal/platform/net/middleware"
)

// StackOptions tunes the per API middleware
type StackOptions struct {
	// CORSOrigins empty means any origin
	CORSOrigins []string
	// Observer records request metrics; nil disables
	Observer middleware.RequestObserver
	// SlowRequest marks slower requests as warn in the access log
	SlowRequest time.Duration
}

// CommonStack returns the per API middleware slice. The process wide chain
// (request id, recovery, compression) lives in middleware.Defaults on the root mux
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	slow := o.SlowRequest
	if slow == 0 {
		slow = 500 * time.Millisecond
	}
	return []func(http.Handler) http.Handler{
		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slow}),
		middleware.Metrics(o.Observer),

		// cross-origin
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
	}
}

// Limit wraps middleware.RateLimit for modules that guard costly routes
func Limit(perMinute int) func(http.Handler) http.Handler {
	return middleware.RateLimit(middleware.RateLimitOptions{PerMinute: perMinute})
}

// CacheFor marks replies publicly cacheable for d
func CacheFor(d time.Duration) func(http.Handler) http.Handler {
	return middleware.SetHeader("Cache-Control", "public, max-age="+strconv.Itoa(int(d/time.Second)))
}

// NoStore keeps caches away from per request replies
func NoStore() func(http.Handler) http.Handler {
	return middleware.SetHeader("Cache-Control", "no-store")
}
