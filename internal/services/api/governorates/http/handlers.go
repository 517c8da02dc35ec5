// Package http provides http transport for governorate profiles
package http

import (
	stdhttp "net/http"

	"diwan/internal/modkit/httpkit"
	svc "diwan/internal/services/api/governorates/service"
)

// Register mounts governorate endpoints
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{slug}", h.get)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /governorates Governorates governoratesList
// @Summary All governorates with population and candidate counts
// @Tags Governorates
// @Produce json
// @Success 200 {array} domain.Summary "ok"
// @Router /governorates [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// swagger:route GET /governorates/{slug} Governorates governoratesGet
// @Summary One governorate with its candidates
// @Tags Governorates
// @Produce json
// @Param slug path string true "governorate slug"
// @Success 200 {object} domain.Detail "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /governorates/{slug} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "slug"))
}
