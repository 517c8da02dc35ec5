package middleware

import (
	"net/http"
	"time"
)

// RequestObserver is fed once per finished request; platform/metrics backs it with prometheus
type RequestObserver interface {
	InFlight(delta int)
	ObserveRequest(route, method string, status int, elapsed time.Duration)
}

// Metrics labels by chi pattern so ids stay out of label values; unrouted requests are "unmatched"
// a nil observer leaves next unwrapped
func Metrics(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if obs == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			obs.InFlight(1)
			defer obs.InFlight(-1)
			status, _, took := served(w, r, next)
			route := routePattern(r)
			if route == "" {
				route = "unmatched"
			}
			obs.ObserveRequest(route, r.Method, status, took)
		})
	}
}
