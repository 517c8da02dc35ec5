package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"diwan/internal/core/spotlight"
)

type fakePool struct{ a, i int32 }

func (f fakePool) PoolStats() (int32, int32) { return f.a, f.i }

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status %d", rec.Code)
	}
	b, _ := io.ReadAll(rec.Body)
	return string(b)
}

func TestMetrics_RequestAndSpotlight(t *testing.T) {
	m := New(nil)

	m.InFlight(1)
	m.InFlight(1)
	m.InFlight(-1)
	m.ObserveRequest("/api/v1/candidates", http.MethodGet, 200, 15*time.Millisecond)

	m.Observe(context.Background(), spotlight.Outcome{Strategy: "upstream"})
	m.Observe(context.Background(), spotlight.Outcome{Strategy: "static", Reason: spotlight.ReasonNoCredential, Degraded: true})
	m.Observe(context.Background(), spotlight.Outcome{Strategy: "static", Reason: spotlight.ReasonNoCredential, Degraded: true})

	m.UpstreamCall("rest", "200", time.Second)
	m.Like("like")

	body := scrape(t, m)
	for _, want := range []string{
		"diwan_requests_in_flight 1",
		`diwan_spotlight_resolutions_total{reason="missing credential",strategy="static"} 2`,
		`diwan_spotlight_resolutions_total{reason="none",strategy="upstream"} 1`,
		`diwan_api_request_duration_seconds_count{method="GET",route="/api/v1/candidates",status="200"} 1`,
		"diwan_spotlight_resolutions_total",
		"diwan_spotlight_upstream_duration_seconds",
		"diwan_community_likes_total",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("scrape missing %s", want)
		}
	}
	if strings.Contains(body, "diwan_db_connection_pool_active") {
		t.Fatalf("pool gauges should be absent without a pool")
	}
}

func TestMetrics_PoolGauges(t *testing.T) {
	body := scrape(t, New(fakePool{a: 3, i: 7}))
	if !strings.Contains(body, "diwan_db_connection_pool_active 3") || !strings.Contains(body, "diwan_db_connection_pool_idle 7") {
		t.Fatalf("pool gauges missing:\n%s", body)
	}
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// two instances must not collide on registration
	_ = New(nil)
	_ = New(nil)
}
