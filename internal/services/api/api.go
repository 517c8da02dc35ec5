// Package api assembles the civic modules under /api/v1
package api

import (
	"diwan/internal/catalog"
	"diwan/internal/core/candidates"
	"diwan/internal/core/spotlight"
	"diwan/internal/core/version"
	"diwan/internal/platform/logger"
	"diwan/internal/platform/metrics"
	phttp "diwan/internal/platform/net/http"
	"diwan/internal/platform/store"

	"diwan/internal/modkit"
	"diwan/internal/modkit/httpkit"
	"diwan/internal/modkit/swaggerkit"

	candidatesmod "diwan/internal/services/api/candidates/module"
	communitymod "diwan/internal/services/api/community/module"
	communityrepo "diwan/internal/services/api/community/repo"
	governoratesmod "diwan/internal/services/api/governorates/module"
	metamod "diwan/internal/services/api/meta/module"
	spotlightmod "diwan/internal/services/api/spotlight/module"
	statisticsmod "diwan/internal/services/api/statistics/module"
)

// Options are the API options
type Options struct {
	// Store may be nil; every backend is optional
	Store  *store.Store
	Logger *logger.Logger

	// Catalog defaults to the embedded dataset
	Catalog *catalog.Catalog
	// Resolver defaults to a chain with no upstream, i.e. always the fallback record
	Resolver *spotlight.Resolver
	// Producer names the configured spotlight upstream for /meta/service
	Producer string
	// CommunityRepo nil means in-memory storage seeded from the catalog
	CommunityRepo communityrepo.Repo
	// Metrics nil disables request metrics and /metrics
	Metrics *metrics.Metrics

	// SpotlightRateLimit is requests per minute per client on /spotlight; 0 disables
	SpotlightRateLimit int
	CORSOrigins        []string

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts every module plus metrics, docs, and pprof as enabled, and returns the modules in mount order
func Mount(r phttp.Router, opt Options) []modkit.Module {
	deps := modkit.Deps{Log: *logger.Get()}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if st := opt.Store; st != nil {
		deps.PG, deps.CH, deps.RDS = st.PG, st.CH, st.RDS
	}

	cat := opt.Catalog
	if cat == nil {
		cat = catalog.MustLoad()
	}
	eng := candidates.New(cat.Candidates())

	res := opt.Resolver
	if res == nil {
		res = spotlight.NewResolver(nil)
	}

	var onLike func(string)
	if opt.Metrics != nil {
		onLike = opt.Metrics.Like
	}

	var spotOpts []modkit.Option
	if opt.SpotlightRateLimit > 0 {
		spotOpts = append(spotOpts, modkit.WithMiddlewares(httpkit.Limit(opt.SpotlightRateLimit)))
	}

	mods := []modkit.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Producer: opt.Producer})),
		candidatesmod.New(deps, modkit.WithPorts(candidatesmod.Ports{Engine: eng})),
		governoratesmod.New(deps, modkit.WithPorts(governoratesmod.Ports{Catalog: cat, Engine: eng})),
		statisticsmod.New(deps, modkit.WithPorts(statisticsmod.Ports{Catalog: cat, Engine: eng})),
		spotlightmod.New(deps, append(spotOpts, modkit.WithPorts(spotlightmod.Ports{Resolver: res}))...),
		communitymod.New(deps, modkit.WithPorts(communitymod.Ports{
			Repo:   opt.CommunityRepo,
			Seeds:  cat.SeedPosts(),
			OnLike: onLike,
		})),
	}

	stack := httpkit.StackOptions{CORSOrigins: opt.CORSOrigins}
	if opt.Metrics != nil {
		stack.Observer = opt.Metrics
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	swaggerkit.Mount(r, opt.EnableSwagger, swaggerkit.Info{
		Title:       "Digital Diwan API",
		Version:     version.Info().Version,
		Description: "Iraqi election data, AI spotlight, and community feed",
		BasePath:    "/api/v1",
	})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(stack), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			deps.Log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})
	return mods
}
