// Package module wires the community feed into the API
package module

import (
	"context"
	"time"

	"diwan/internal/catalog"
	modkit "diwan/internal/modkit"
	"diwan/internal/modkit/httpkit"
	"diwan/internal/services/api/community/domain"
	chttp "diwan/internal/services/api/community/http"
	"diwan/internal/services/api/community/repo"
	csvc "diwan/internal/services/api/community/service"
)

// Ports declares what the module accepts
// Repo nil means an in memory feed seeded from Seeds
type Ports struct {
	Repo   repo.Repo
	Seeds  []catalog.SeedPost
	OnLike func(action string)
}

// Module implements the community module
type Module struct {
	modkit.Base
	svc   csvc.Service
	ports any
}

// New constructs the community module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("community"),
		modkit.WithPrefix("/community"),
		modkit.WithMiddlewares(httpkit.NoStore()),
	}, opts...)...)

	in, _ := b.Ports.(Ports)
	r := in.Repo
	if r == nil {
		mem := repo.NewMemory()
		// in memory seeding cannot fail
		_ = repo.Seed(context.Background(), mem, repo.SeedRows(in.Seeds, time.Now()))
		r = mem
		deps.Log.Debug().Str("module", "community").Int("seeds", len(in.Seeds)).Msg("community feed in memory")
	}

	svc := csvc.New(r, csvc.Options{OnLike: in.OnLike})
	m := &Module{svc: svc, ports: adaptPort{svc: svc}}
	m.Base = modkit.NewBase(b, func(rt httpkit.Router) { chttp.Register(rt, m.svc) })
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc csvc.Service }

func (a adaptPort) List(ctx context.Context, limit int) ([]domain.Post, error) {
	return a.svc.List(ctx, limit)
}

func (a adaptPort) Create(ctx context.Context, in domain.CreateInput) (domain.Post, error) {
	return a.svc.Create(ctx, in)
}

func (a adaptPort) Like(ctx context.Context, id string) (domain.LikeState, error) {
	return a.svc.Like(ctx, id)
}

func (a adaptPort) Unlike(ctx context.Context, id string) (domain.LikeState, error) {
	return a.svc.Unlike(ctx, id)
}

var _ domain.ServicePort = adaptPort{}
