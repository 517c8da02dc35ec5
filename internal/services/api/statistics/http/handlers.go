// Package http provides http transport for national statistics
package http

import (
	stdhttp "net/http"

	"diwan/internal/modkit/httpkit"
	svc "diwan/internal/services/api/statistics/service"
)

// Register mounts statistics endpoints
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.overview)
	httpkit.Get(r, "/countdown", h.countdown)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /statistics Statistics statisticsOverview
// @Summary National statistics, turnout trend, highlights and candidate breakdown
// @Tags Statistics
// @Produce json
// @Success 200 {object} domain.Overview "ok"
// @Router /statistics [get]
func (h *handlers) overview(r *stdhttp.Request) (any, error) {
	return h.svc.Overview(r.Context())
}

// swagger:route GET /statistics/countdown Statistics statisticsCountdown
// @Summary Time left until the election
// @Tags Statistics
// @Produce json
// @Success 200 {object} domain.Countdown "ok"
// @Router /statistics/countdown [get]
func (h *handlers) countdown(r *stdhttp.Request) (any, error) {
	return h.svc.Countdown(r.Context())
}
