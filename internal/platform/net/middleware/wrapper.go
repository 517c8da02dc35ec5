// Package middleware holds the http chain: request ids, access logs, metrics, limits, and recovery
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// SetHeader sets key to value on every response
func SetHeader(key, value string) func(http.Handler) http.Handler {
	return chimw.SetHeader(key, value)
}

// CORSOptions holds the allowed origins; empty allows any
type CORSOptions struct {
	AllowedOrigins []string
}

// CORS lets browsers read the API and the request id headers
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	})
}

// Defaults is the chain on the root mux; request id comes before the logger, recovery before handlers
// caching is left to each module
func Defaults() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		chimw.RealIP,
		chimw.RequestID,
		RequestLogger(),
		RecoverJSON,
		chimw.StripSlashes,
		chimw.Timeout(60 * time.Second),
		chimw.Compress(flate.DefaultCompression),
	}
}
