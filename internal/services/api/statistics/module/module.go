// Package module wires statistics into the API using modkit
package module

import (
	"context"
	"time"

	"diwan/internal/catalog"
	"diwan/internal/core/candidates"
	modkit "diwan/internal/modkit"
	"diwan/internal/modkit/httpkit"
	"diwan/internal/services/api/statistics/domain"
	shttp "diwan/internal/services/api/statistics/http"
	ssvc "diwan/internal/services/api/statistics/service"
)

// Ports declares what the module needs injected; Now is optional
type Ports struct {
	Catalog *catalog.Catalog
	Engine  *candidates.Engine
	Now     func() time.Time
}

// Module implements the statistics module
type Module struct {
	modkit.Base
	svc   ssvc.Service
	ports any
}

// New constructs the statistics module
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("statistics"),
		modkit.WithPrefix("/statistics"),
		modkit.WithMiddlewares(httpkit.CacheFor(5 * time.Minute)),
	}, opts...)...)

	in, _ := b.Ports.(Ports)
	if in.Catalog == nil || in.Engine == nil {
		panic("statistics module requires Catalog and Engine ports")
	}

	svc := ssvc.New(in.Catalog, in.Engine, in.Now)
	m := &Module{svc: svc, ports: adaptPort{svc: svc}}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { shttp.Register(r, m.svc) })
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc ssvc.Service }

func (a adaptPort) Overview(ctx context.Context) (domain.Overview, error) { return a.svc.Overview(ctx) }

func (a adaptPort) Countdown(ctx context.Context) (domain.Countdown, error) {
	return a.svc.Countdown(ctx)
}

var _ domain.ServicePort = adaptPort{}
