package middleware

import (
	"net/http"

	"diwan/internal/platform/logger"
	pnet "diwan/internal/platform/net"
)

// RequestLogger puts a logger stamped with the chi request id on ctx and echoes the id
// mount after chimw.RequestID
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rid := pnet.RequestID(r.Context()); rid != "" {
				w.Header().Set("X-Request-ID", rid)
				r = r.WithContext(logger.WithRequest(r.Context(), rid))
			}
			next.ServeHTTP(w, r)
		})
	}
}
