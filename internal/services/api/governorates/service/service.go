// Package service serves governorate profiles from the catalog
package service

import (
	"context"
	"strings"

	"diwan/internal/catalog"
	"diwan/internal/core/candidates"
	perr "diwan/internal/platform/errors"
	"diwan/internal/services/api/governorates/domain"

	"github.com/dustin/go-humanize"
)

// Service defines the governorates service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	cat *catalog.Catalog
	eng *candidates.Engine
}

// New constructs the service
func New(cat *catalog.Catalog, eng *candidates.Engine) *Svc {
	if cat == nil || eng == nil {
		panic("governorates.Service requires a Catalog and an Engine")
	}
	return &Svc{cat: cat, eng: eng}
}

// List returns every governorate in catalog order
func (s *Svc) List(context.Context) ([]domain.Summary, error) {
	govs := s.cat.Governorates()
	out := make([]domain.Summary, 0, len(govs))
	for _, g := range govs {
		out = append(out, s.summary(g))
	}
	return out, nil
}

// Get returns one governorate with its candidates
func (s *Svc) Get(_ context.Context, slug string) (domain.Detail, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	g, ok := s.cat.Governorate(slug)
	if !ok {
		return domain.Detail{}, perr.NotFoundf("governorate %q not found", slug)
	}
	return domain.Detail{Summary: s.summary(g), Candidates: s.eng.InGovernorate(g.Slug)}, nil
}

func (s *Svc) summary(g catalog.Governorate) domain.Summary {
	return domain.Summary{
		Governorate:     g,
		PopulationLabel: PopulationLabel(g.Population),
		CandidateCount:  len(s.eng.InGovernorate(g.Slug)),
	}
}

// PopulationLabel renders a compact figure such as 8.2M or 950K
func PopulationLabel(n int64) string {
	if n < 1000 {
		return humanize.Comma(n)
	}
	v, unit := humanize.ComputeSI(float64(n))
	return humanize.FtoaWithDigits(v, 1) + strings.ToUpper(unit)
}
