// Package module wires governorate profiles into the API
package module

import (
	"context"
	"time"

	"diwan/internal/catalog"
	"diwan/internal/core/candidates"
	modkit "diwan/internal/modkit"
	"diwan/internal/modkit/httpkit"
	"diwan/internal/services/api/governorates/domain"
	ghttp "diwan/internal/services/api/governorates/http"
	gsvc "diwan/internal/services/api/governorates/service"
)

// Ports declares what the module needs injected
type Ports struct {
	Catalog *catalog.Catalog
	Engine  *candidates.Engine
}

// Module implements the governorates module
type Module struct {
	modkit.Base
	svc   gsvc.Service
	ports any
}

// New constructs the governorates module
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("governorates"),
		modkit.WithPrefix("/governorates"),
		modkit.WithMiddlewares(httpkit.CacheFor(5 * time.Minute)),
	}, opts...)...)

	in, _ := b.Ports.(Ports)
	if in.Catalog == nil || in.Engine == nil {
		panic("governorates module requires Catalog and Engine ports")
	}

	svc := gsvc.New(in.Catalog, in.Engine)
	m := &Module{svc: svc, ports: adaptPort{svc: svc}}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { ghttp.Register(r, m.svc) })
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc gsvc.Service }

func (a adaptPort) List(ctx context.Context) ([]domain.Summary, error) { return a.svc.List(ctx) }

func (a adaptPort) Get(ctx context.Context, slug string) (domain.Detail, error) {
	return a.svc.Get(ctx, slug)
}

var _ domain.ServicePort = adaptPort{}
