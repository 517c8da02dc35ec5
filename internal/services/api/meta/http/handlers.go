// Package http serves liveness, readiness, and build info
package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"diwan/internal/core/version"
	"diwan/internal/modkit/httpkit"
)

// Backend is one dependency listed by /meta/ready; nil Ping means it is not configured
type Backend struct {
	Name string
	Ping func(context.Context) error
}

// Deps are what the handlers report on
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Backends    []Backend
	// Producer names the configured spotlight upstream, or "none"
	Producer string
	// ReadyTimeout bounds all pings of one /meta/ready call; 0 means 2s
	ReadyTimeout time.Duration
}

// HealthResponse says the process is serving
type HealthResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"diwan-api"`
	Started string `json:"started" example:"2025-10-03T13:00:00Z"`
	Now     string `json:"now" example:"2025-10-03T13:05:00Z"`
}

// BackendStatus is ok, fail, or skipped
type BackendStatus struct {
	Name   string `json:"name" example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is fail when any configured backend fails its ping
type ReadyResponse struct {
	Status string          `json:"status" example:"ok"`
	Checks []BackendStatus `json:"checks"`
	Now    string          `json:"now" example:"2025-10-03T13:05:00Z"`
}

// ServiceResponse is uptime plus the active spotlight producer
type ServiceResponse struct {
	Name     string `json:"name" example:"diwan-api"`
	Started  string `json:"started" example:"2025-10-03T13:00:00Z"`
	Uptime   int64  `json:"uptime" example:"300"`
	Producer string `json:"producer" example:"rest"`
}

type handlers struct{ d Deps }

// Register mounts health, ready, version, and service
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := handlers{d: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", func(*stdhttp.Request) (any, error) { return version.Info(), nil })
	httpkit.Get(r, "/service", h.service)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h handlers) health(*stdhttp.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.d.ServiceName, Started: stamp(h.d.StartedAt), Now: stamp(time.Now())}, nil
}

// @Summary Readiness with a ping per backend
// @Description Backends that are not configured report skipped and never fail the check
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h handlers) ready(r *stdhttp.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.d.ReadyTimeout)
	defer cancel()

	res := ReadyResponse{Status: "ok", Checks: make([]BackendStatus, 0, len(h.d.Backends))}
	for _, b := range h.d.Backends {
		st := BackendStatus{Name: b.Name, Status: "skipped"}
		if b.Ping != nil {
			st.Status = "ok"
			if err := b.Ping(ctx); err != nil {
				st.Status, st.Error = "fail", err.Error()
				res.Status = "fail"
			}
		}
		res.Checks = append(res.Checks, st)
	}
	res.Now = stamp(time.Now())
	return res, nil
}

// @Summary Uptime and spotlight producer
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h handlers) service(*stdhttp.Request) (any, error) {
	return ServiceResponse{
		Name:     h.d.ServiceName,
		Started:  stamp(h.d.StartedAt),
		Uptime:   int64(time.Since(h.d.StartedAt) / time.Second),
		Producer: h.d.Producer,
	}, nil
}
