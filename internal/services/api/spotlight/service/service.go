// Package service resolves creator spotlights and records their outcomes
package service

import (
	"context"

	"diwan/internal/core/spotlight"
	perr "diwan/internal/platform/errors"
	"diwan/internal/services/api/spotlight/domain"
)

// Service defines the spotlight service contract
type Service interface {
	domain.ServicePort
}

// Resolver is satisfied by *spotlight.Resolver
type Resolver interface {
	Resolve(ctx context.Context, topic string) (spotlight.Record, error)
}

// Svc implements Service
type Svc struct {
	res Resolver
}

// New constructs the service
func New(res Resolver) *Svc {
	if res == nil {
		panic("spotlight.Service requires a non nil Resolver")
	}
	return &Svc{res: res}
}

// Spotlight always yields a record unless ctx ends first
func (s *Svc) Spotlight(ctx context.Context, topic string) (domain.Response, error) {
	rec, err := s.res.Resolve(ctx, topic)
	if err != nil {
		return domain.Response{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "spotlight cancelled")
	}
	return domain.Response{Spotlight: rec}, nil
}
