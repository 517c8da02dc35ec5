// Package metrics holds the Prometheus collectors for diwan-api
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"diwan/internal/core/spotlight"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "diwan"

// PoolStatter is satisfied by the Postgres adapter in platform/store
type PoolStatter interface {
	PoolStats() (acquired, idle int32)
}

// Metrics groups every collector; one per process
type Metrics struct {
	reg prometheus.Gatherer

	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	SpotlightTotal   *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	LikesTotal       *prometheus.CounterVec
}

// New registers collectors on a fresh registry, plus Go and process collectors
// pool may be nil when Postgres is not configured
func New(pool PoolStatter) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "HTTP request duration in seconds, by route, method, and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
		SpotlightTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spotlight_resolutions_total",
			Help:      "Spotlight resolutions by winning strategy and degradation reason.",
		}, []string{"strategy", "reason"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "spotlight_upstream_duration_seconds",
			Help:      "Gemini call latency by producer and outcome.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"producer", "outcome"}),
		LikesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "community_likes_total",
			Help:      "Like and unlike actions on community posts.",
		}, []string{"action"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestsInFlight,
		m.SpotlightTotal,
		m.UpstreamDuration,
		m.LikesTotal,
	)

	// pool gauges read live stats from pgxpool
	if pool != nil {
		reg.MustRegister(
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connection_pool_active",
				Help:      "Number of acquired database connections.",
			}, func() float64 {
				a, _ := pool.PoolStats()
				return float64(a)
			}),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connection_pool_idle",
				Help:      "Number of idle database connections.",
			}, func() float64 {
				_, i := pool.PoolStats()
				return float64(i)
			}),
		)
	}
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// InFlight implements middleware.RequestObserver
func (m *Metrics) InFlight(delta int) { m.RequestsInFlight.Add(float64(delta)) }

// ObserveRequest implements middleware.RequestObserver
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Observe implements spotlight.Observer
func (m *Metrics) Observe(_ context.Context, o spotlight.Outcome) {
	reason := o.Reason
	if reason == "" {
		reason = "none"
	}
	m.SpotlightTotal.WithLabelValues(o.Strategy, reason).Inc()
}

// UpstreamCall matches gemini.CallFunc
func (m *Metrics) UpstreamCall(producer, outcome string, elapsed time.Duration) {
	m.UpstreamDuration.WithLabelValues(producer, outcome).Observe(elapsed.Seconds())
}

// Like counts a like ("like") or unlike ("unlike") action
func (m *Metrics) Like(action string) { m.LikesTotal.WithLabelValues(action).Inc() }
