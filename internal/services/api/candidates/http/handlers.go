// Package http provides http transport for the candidate directory
package http

import (
	stdhttp "net/http"

	"diwan/internal/modkit/httpkit"
	svc "diwan/internal/services/api/candidates/service"
)

// Register mounts candidate endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/facets", h.facets)
	httpkit.Get(r, "/{id}", h.byID)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /candidates Candidates candidatesList
// @Summary Filter and page the candidate directory
// @Tags Candidates
// @Produce json
// @Param search query string false "case insensitive match on name, party, biography"
// @Param governorate query string false "governorate slug"
// @Param party query string false "exact party name"
// @Param gender query string false "male or female"
// @Param incumbent query string false "true or false; anything else is ignored"
// @Param page query int false "1 based page" default(1)
// @Param limit query int false "page size, max 100" default(10)
// @Success 200 {object} domain.ListResult "ok"
// @Router /candidates [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	res, err := h.svc.List(r.Context(), r.URL.Query())
	if err != nil {
		return nil, err
	}
	return httpkit.List(res.Items, httpkit.Page{Page: res.Page, Limit: res.Limit, Total: res.Total, Pages: res.Pages}), nil
}

// swagger:route GET /candidates/facets Candidates candidatesFacets
// @Summary Distinct parties and governorates for filter menus
// @Tags Candidates
// @Produce json
// @Success 200 {object} domain.Facets "ok"
// @Router /candidates/facets [get]
func (h *handlers) facets(r *stdhttp.Request) (any, error) {
	return h.svc.Facets(r.Context())
}

// swagger:route GET /candidates/{id} Candidates candidatesByID
// @Summary One candidate by id
// @Tags Candidates
// @Produce json
// @Param id path string true "candidate id"
// @Success 200 {object} domain.Candidate "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /candidates/{id} [get]
func (h *handlers) byID(r *stdhttp.Request) (any, error) {
	return h.svc.ByID(r.Context(), httpkit.Param(r, "id"))
}
