// Package http provides http transport for the creator spotlight
package http

import (
	stdhttp "net/http"

	"diwan/internal/modkit/httpkit"
	"diwan/internal/services/api/spotlight/domain"
	svc "diwan/internal/services/api/spotlight/service"
)

var bodyOpts = httpkit.JSONOptions{MaxBytes: 4 << 10, DisallowUnknown: true, AllowEmptyBody: true}

// Register mounts GET and POST on the module root
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.get)
	r.Post("/", httpkit.JSONWith(bodyOpts, h.post))
}

type handlers struct{ svc svc.Service }

// swagger:route GET /spotlight Spotlight spotlightGet
// @Summary Creator spotlight for an optional topic
// @Description Always answers with a valid record; upstream failures fall back to a curated quote
// @Tags Spotlight
// @Produce json
// @Param topic query string false "topic" default(digital civic innovation)
// @Success 200 {object} domain.Response "ok"
// @Failure 429 {object} httpkit.Envelope "rate limited"
// @Router /spotlight [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Spotlight(r.Context(), r.URL.Query().Get("topic"))
}

// swagger:route POST /spotlight Spotlight spotlightPost
// @Summary Creator spotlight with the topic in the body
// @Tags Spotlight
// @Accept json
// @Produce json
// @Param body body domain.Request false "optional topic"
// @Success 200 {object} domain.Response "ok"
// @Failure 400 {object} httpkit.Envelope "bad body"
// @Failure 429 {object} httpkit.Envelope "rate limited"
// @Router /spotlight [post]
func (h *handlers) post(r *stdhttp.Request, in domain.Request) (any, error) {
	return h.svc.Spotlight(r.Context(), in.Topic)
}
