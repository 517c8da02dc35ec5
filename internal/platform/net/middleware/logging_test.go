package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"diwan/internal/platform/logger"
	"diwan/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestRequestLogger_StampsCtxLogger(t *testing.T) {
	var buf bytes.Buffer
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := logger.C(r.Context()).Output(&buf)
		l.Warn().Msg("upstream slow")
		w.WriteHeader(http.StatusNoContent)
	})

	h := chimw.RequestID(middleware.RequestLogger()(next))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/spotlight", nil)
	req.Header.Set("X-Request-Id", "rid-abc")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if !strings.Contains(buf.String(), `"request_id":"rid-abc"`) {
		t.Fatalf("log line %q", buf.String())
	}
	if rr.Header().Get("X-Request-ID") != "rid-abc" {
		t.Fatalf("X-Request-ID=%q", rr.Header().Get("X-Request-ID"))
	}
}

func TestRequestLogger_NoRequestID(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if logger.C(r.Context()) != logger.Get() {
			t.Error("expected the root logger")
		}
	})
	rr := httptest.NewRecorder()
	middleware.RequestLogger()(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if !called || rr.Header().Get("X-Request-ID") != "" {
		t.Fatalf("called=%v header=%q", called, rr.Header().Get("X-Request-ID"))
	}
}
