package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "diwan/internal/platform/errors"
)

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	rl := newLimiter(RateLimitOptions{})
	if rl != nil {
		t.Fatalf("expected nil limiter when PerMinute <= 0")
	}
	called := false
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Fatalf("nil limiter should pass through")
	}
}

func TestRateLimiter_AllowPerKey(t *testing.T) {
	rl := newLimiter(RateLimitOptions{PerMinute: 2})
	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatalf("burst of 2 should be allowed")
	}
	if rl.Allow("a") {
		t.Fatalf("third request in the same instant should be denied")
	}
	if !rl.Allow("b") {
		t.Fatalf("other keys have their own bucket")
	}

	now = now.Add(31 * time.Second)
	if !rl.Allow("a") {
		t.Fatalf("a token should refill after 30s at 2/min")
	}
}

func TestRateLimiter_SweepsIdleBuckets(t *testing.T) {
	rl := newLimiter(RateLimitOptions{PerMinute: 1, IdleTTL: time.Minute})
	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(2 * time.Minute)
	rl.Allow("b")

	if _, ok := rl.buckets["a"]; ok {
		t.Fatalf("idle bucket should have been swept")
	}
	if len(rl.buckets) != 1 {
		t.Fatalf("expected one live bucket, got %d", len(rl.buckets))
	}
}

func TestRateLimiter_Handler429Envelope(t *testing.T) {
	h := RateLimit(RateLimitOptions{PerMinute: 1})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/spotlight", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	first := httptest.NewRecorder()
	h.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("first request: %d", first.Code)
	}

	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") != "61" {
		t.Fatalf("unexpected Retry-After %q", second.Header().Get("Retry-After"))
	}
	var body struct {
		Code  perr.ErrorCode `json:"code"`
		Error string         `json:"error"`
	}
	if err := json.Unmarshal(second.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != perr.ErrorCodeTooManyRequests || body.Error != "too many requests" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestKeyByIP_StripsPort(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:1234"
	if got := keyByIP(req); got != "ip:192.0.2.7" {
		t.Fatalf("got %q", got)
	}
	req.RemoteAddr = "192.0.2.7"
	if got := keyByIP(req); got != "ip:192.0.2.7" {
		t.Fatalf("got %q without port", got)
	}
}
