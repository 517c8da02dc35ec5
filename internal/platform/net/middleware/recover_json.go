package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	perr "diwan/internal/platform/errors"
	"diwan/internal/platform/logger"
	pnet "diwan/internal/platform/net"
)

// writeError answers with the envelope for err, for middleware that stops the chain
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := pnet.Error(err, pnet.RequestID(r.Context()))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// RecoverJSON turns a handler panic into a 500 envelope and logs the stack
// http.ErrAbortHandler is re-raised so net/http drops the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			switch v {
			case nil:
				return
			case http.ErrAbortHandler:
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Str("route", r.Method+" "+r.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			writeError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
