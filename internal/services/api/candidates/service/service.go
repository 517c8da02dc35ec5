// Package service answers directory queries from the in memory engine
package service

import (
	"context"
	"net/url"
	"strings"

	"diwan/internal/core/candidates"
	perr "diwan/internal/platform/errors"
	"diwan/internal/services/api/candidates/domain"
)

// Service defines the candidates service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service over a candidates.Engine
type Svc struct {
	eng *candidates.Engine
}

// New constructs the service
func New(eng *candidates.Engine) *Svc {
	if eng == nil {
		panic("candidates.Service requires a non nil Engine")
	}
	return &Svc{eng: eng}
}

// List filters and pages the directory; bad parameters never error
func (s *Svc) List(_ context.Context, q url.Values) (domain.ListResult, error) {
	c, p := candidates.ParseParams(q)
	res := s.eng.Query(c, p)
	return domain.ListResult{
		Items: res.Items,
		Page:  p.Number,
		Limit: p.Size,
		Total: res.TotalMatching,
		Pages: res.TotalPages,
	}, nil
}

// Facets lists distinct parties and governorate slugs over the full directory
func (s *Svc) Facets(context.Context) (domain.Facets, error) {
	return domain.Facets{Parties: s.eng.Parties(), Governorates: s.eng.Governorates()}, nil
}

// ByID fetches one candidate
func (s *Svc) ByID(_ context.Context, id string) (domain.Candidate, error) {
	id = strings.TrimSpace(id)
	c, ok := s.eng.ByID(id)
	if !ok {
		return domain.Candidate{}, perr.NotFoundf("candidate %q not found", id)
	}
	return c, nil
}
