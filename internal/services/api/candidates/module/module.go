// Package module wires the candidate directory into the API using modkit
package module

import (
	"context"
	"time"
	"net/url"

	"diwan/internal/core/candidates"
	modkit "diwan/internal/modkit"
	"diwan/internal/modkit/httpkit"
	"diwan/internal/services/api/candidates/domain"
	chttp "diwan/internal/services/api/candidates/http"
	csvc "diwan/internal/services/api/candidates/service"
)

// Ports declares what the module needs injected
type Ports struct {
	Engine *candidates.Engine
}

// Module implements the candidates module
type Module struct {
	modkit.Base
	svc   csvc.Service
	ports any
}

// New constructs the candidates module; the Engine must be injected with modkit.WithPorts
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("candidates"),
		modkit.WithPrefix("/candidates"),
		modkit.WithMiddlewares(httpkit.CacheFor(5 * time.Minute)),
	}, opts...)...)

	in, _ := b.Ports.(Ports)
	if in.Engine == nil {
		panic("candidates module requires an Engine port")
	}

	svc := csvc.New(in.Engine)
	m := &Module{svc: svc, ports: adaptPort{svc: svc}}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { chttp.Register(r, m.svc) })
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc csvc.Service }

func (a adaptPort) List(ctx context.Context, q url.Values) (domain.ListResult, error) {
	return a.svc.List(ctx, q)
}

func (a adaptPort) Facets(ctx context.Context) (domain.Facets, error) { return a.svc.Facets(ctx) }

func (a adaptPort) ByID(ctx context.Context, id string) (domain.Candidate, error) {
	return a.svc.ByID(ctx, id)
}

var _ domain.ServicePort = adaptPort{}
