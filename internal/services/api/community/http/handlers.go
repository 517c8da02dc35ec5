// Package http provides http transport for the community feed
package http

import (
	stdhttp "net/http"
	"strconv"

	"diwan/internal/modkit/httpkit"
	"diwan/internal/services/api/community/domain"
	svc "diwan/internal/services/api/community/service"
)

// Register mounts community endpoints
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/posts", h.list)
	httpkit.PostJSON(r, "/posts", h.create)
	httpkit.Post(r, "/posts/{id}/like", h.like)
	httpkit.Delete(r, "/posts/{id}/like", h.unlike)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /community/posts Community communityList
// @Summary Newest community posts
// @Tags Community
// @Produce json
// @Param limit query int false "max posts, up to 100" default(20)
// @Success 200 {array} domain.Post "ok"
// @Router /community/posts [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return h.svc.List(r.Context(), limit)
}

// swagger:route POST /community/posts Community communityCreate
// @Summary Publish a post
// @Tags Community
// @Accept json
// @Produce json
// @Param body body domain.CreateInput true "post"
// @Success 201 {object} domain.Post "created"
// @Failure 400 {object} httpkit.Envelope "invalid"
// @Router /community/posts [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(p), nil
}

// swagger:route POST /community/posts/{id}/like Community communityLike
// @Summary Like a post
// @Tags Community
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} domain.LikeState "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /community/posts/{id}/like [post]
func (h *handlers) like(r *stdhttp.Request) (any, error) {
	return h.svc.Like(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route DELETE /community/posts/{id}/like Community communityUnlike
// @Summary Remove a like; the count never drops below zero
// @Tags Community
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} domain.LikeState "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /community/posts/{id}/like [delete]
func (h *handlers) unlike(r *stdhttp.Request) (any, error) {
	return h.svc.Unlike(r.Context(), httpkit.Param(r, "id"))
}
