package middleware

import (
	"net/http"
	"time"

	"diwan/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions tunes the access log; Slow > 0 logs slower requests at warn
type AccessLogOptions struct {
	Slow time.Duration
}

// served runs next behind chi's status recording writer
func served(w http.ResponseWriter, r *http.Request, next http.Handler) (status, bytes int, took time.Duration) {
	ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
	start := time.Now()
	next.ServeHTTP(ww, r)
	status = ww.Status()
	if status == 0 {
		status = http.StatusOK
	}
	return status, ww.BytesWritten(), time.Since(start)
}

// routePattern is the matched chi pattern, e.g. /api/v1/candidates/{id}, or "" when unrouted
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		return rc.RoutePattern()
	}
	return ""
}

// AccessLogZerolog writes one line per request on the ctx logger; 5xx log at error
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			status, n, took := served(w, r, next)
			log := logger.C(r.Context())
			ev := log.Info()
			if status >= http.StatusInternalServerError {
				ev = log.Error()
			} else if opt.Slow > 0 && took >= opt.Slow {
				ev = log.Warn()
			}
			ev.Str("method", r.Method).
				Str("route", routePattern(r)).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", n).
				Dur("took", took).
				Str("remote", r.RemoteAddr).
				Msg("request")
		})
	}
}
