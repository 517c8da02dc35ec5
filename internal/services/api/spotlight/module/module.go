// Package module wires the creator spotlight into the API
package module

import (
	"context"

	"diwan/internal/core/spotlight"
	modkit "diwan/internal/modkit"
	"diwan/internal/modkit/httpkit"
	"diwan/internal/services/api/spotlight/domain"
	sphttp "diwan/internal/services/api/spotlight/http"
	spsvc "diwan/internal/services/api/spotlight/service"
)

// Ports declares what the module needs injected
// rate limiting arrives as module middleware, see httpkit.Limit
type Ports struct {
	Resolver *spotlight.Resolver
}

// Module implements the spotlight module
type Module struct {
	modkit.Base
	svc   spsvc.Service
	ports any
}

// New constructs the spotlight module
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("spotlight"),
		modkit.WithPrefix("/spotlight"),
		modkit.WithMiddlewares(httpkit.NoStore()),
	}, opts...)...)

	in, _ := b.Ports.(Ports)
	if in.Resolver == nil {
		panic("spotlight module requires a Resolver port")
	}

	svc := spsvc.New(in.Resolver)
	m := &Module{svc: svc, ports: adaptPort{svc: svc}}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { sphttp.Register(r, m.svc) })
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc spsvc.Service }

func (a adaptPort) Spotlight(ctx context.Context, topic string) (domain.Response, error) {
	return a.svc.Spotlight(ctx, topic)
}

var _ domain.ServicePort = adaptPort{}
