// Package module mounts the meta endpoints
package module

import (
	"context"
	"time"

	"diwan/internal/core/version"
	modkit "diwan/internal/modkit"
	"diwan/internal/modkit/httpkit"
	metahttp "diwan/internal/services/api/meta/http"
)

// Ports are optional descriptive inputs
type Ports struct {
	// Producer names the spotlight upstream shown on /meta/service
	Producer string
}

// Module serves /meta
type Module struct {
	modkit.Base
}

// New builds the module; readiness pings whichever of deps.PG, deps.CH, deps.RDS are set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
		modkit.WithMiddlewares(httpkit.NoStore()),
	}, opts...)...)
	in, _ := b.Ports.(Ports)
	if in.Producer == "" {
		in.Producer = "none"
	}
	d := metahttp.Deps{
		ServiceName: version.ServiceName,
		StartedAt:   time.Now(),
		Backends:    backends(deps),
		Producer:    in.Producer,
	}
	return &Module{Base: modkit.NewBase(b, func(r httpkit.Router) { metahttp.Register(r, d) })}
}

func backends(deps modkit.Deps) []metahttp.Backend {
	out := []metahttp.Backend{{Name: "pg"}, {Name: "ch"}, {Name: "redis"}}
	if p, ok := deps.PG.(interface{ Ping(context.Context) error }); ok {
		out[0].Ping = p.Ping
	}
	if deps.CH != nil {
		out[1].Ping = deps.CH.Ping
	}
	if rds := deps.RDS; rds != nil {
		out[2].Ping = func(ctx context.Context) error { return rds.Ping(ctx).Err() }
	}
	return out
}

// Ports is nil; nothing depends on meta
func (m *Module) Ports() any { return nil }
