// @title         Digital Diwan API
// @version       0.1.0
// @description   Election data, AI spotlight, and community feed

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"diwan/internal/adapters/gemini"
	"diwan/internal/adapters/quota"
	"diwan/internal/catalog"
	"diwan/internal/core/spotlight"
	"diwan/internal/core/version"
	"diwan/internal/modkit/repokit"
	"diwan/internal/platform/config"
	"diwan/internal/platform/logger"
	"diwan/internal/platform/metrics"
	phttp "diwan/internal/platform/net/http"
	"diwan/internal/platform/net/middleware"
	"diwan/internal/platform/store"

	"diwan/internal/services/api"
	communityrepo "diwan/internal/services/api/community/repo"
	spotlightrepo "diwan/internal/services/api/spotlight/repo"
	spotlightsvc "diwan/internal/services/api/spotlight/service"

	"github.com/go-chi/chi/v5"
)

func main() {
	// .env first so every config view below sees it
	dotErr := config.LoadDotEnv()

	// one view per env prefix: CORE_API_*, SERVICE_PGSQL_*, SERVICE_CLICKHOUSE_*, SERVICE_REDIS_*, SPOTLIGHT_*
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	rdsCfg := root.Prefix("SERVICE_REDIS_")
	spCfg := root.Prefix("SPOTLIGHT_")

	l := logger.Get()
	if dotErr != nil {
		l.Warn().Err(dotErr).Msg(".env could not be read")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat := catalog.MustLoad()

	// every backend is optional; an empty URL leaves it nil on the store
	pgURL := pgCfg.MayString("DBURL", "")
	chURL := chCfg.MayString("DBURL", "")
	rdsURL := rdsCfg.MayString("URL", "")
	st, err := store.Open(ctx,
		store.Config{
			AppName: version.ServiceName,
			PG: store.PGConfig{
				Enabled:     pgURL != "",
				URL:         pgURL,
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled:   chURL != "",
				URL:       chURL,
				ClientTag: "api",
			},
			RDS: store.RedisConfig{
				Enabled: rdsURL != "",
				URL:     rdsURL,
				DB:      rdsCfg.MayInt("DB", 0),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	var pool metrics.PoolStatter
	if ps, ok := st.PG.(metrics.PoolStatter); ok {
		pool = ps
	}
	m := metrics.New(pool)

	// community feed: postgres when configured, memory otherwise
	var community communityrepo.Repo
	if st.PG != nil {
		if err := communityrepo.EnsureSchema(ctx, st.PG); err != nil {
			l.Panic().Err(err).Msg("community schema")
		}
		community = repokit.MustBind(communityrepo.NewPG(), st.PG)
		if err := communityrepo.SeedPG(ctx, st.PG, communityrepo.SeedRows(cat.SeedPosts(), time.Now())); err != nil {
			l.Panic().Err(err).Msg("community seed")
		}
	}

	// spotlight outcomes: metrics always, clickhouse events when configured
	observers := spotlight.Observers{m}
	var sink *spotlightsvc.Sink
	if st.CH != nil {
		events := spotlightrepo.NewCH(st.CH)
		if err := events.EnsureSchema(ctx); err != nil {
			l.Panic().Err(err).Msg("spotlight events schema")
		}
		sink = spotlightsvc.NewSink(events, spotlightsvc.SinkOptions{})
		go func() { _ = sink.Run(ctx) }()
		observers = append(observers, sink)
	}

	producer := spCfg.MayEnum("PRODUCER", "rest", "rest", "genai")
	src, err := newSource(ctx, root, spCfg, producer, m)
	if err != nil {
		l.Panic().Err(err).Msg("spotlight producer")
	}
	if src == nil {
		producer = "none"
		l.Warn().Msg("no GEMINI_API_KEY; spotlight serves the fallback record")
	}
	resolver := spotlight.NewResolver(
		[]spotlight.Strategy{spotlight.NewUpstream(src, spotlight.UpstreamOptions{
			Budget:  quota.New(st.RDS, spCfg.MayInt("QUOTA_PER_MIN", 0)),
			Timeout: spCfg.MayDuration("TIMEOUT", 0),
		})},
		spotlight.WithObserver(observers),
	)

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg, func(mux *chi.Mux) { mux.Use(middleware.Defaults()...) })

	api.Mount(
		srv.Router(),
		api.Options{
			Store:              st,
			Logger:             l,
			Catalog:            cat,
			Resolver:           resolver,
			Producer:           producer,
			CommunityRepo:      community,
			Metrics:            metricsIf(apiCfg.MayBool("METRICS", true), m),
			SpotlightRateLimit: apiCfg.MayInt("SPOTLIGHT_RATE_LIMIT", 30),
			CORSOrigins:        apiCfg.MayCSV("CORS_ORIGINS", nil),
			EnableSwagger:      apiCfg.MayBool("SWAGGER", true),
			EnableProfiler:     apiCfg.MayBool("PROFILER", false),
		},
	)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error().Err(err).Msg("http shutdown")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}

	// let the sink flush what it holds
	if sink != nil {
		select {
		case <-sink.Done():
		case <-time.After(10 * time.Second):
			l.Warn().Msg("spotlight sink did not drain in time")
		}
		if n := sink.Dropped(); n > 0 {
			l.Warn().Int64("dropped", n).Msg("spotlight events dropped")
		}
	}
}

// newSource builds the configured Gemini producer; nil when no key is set
func newSource(ctx context.Context, root, spCfg config.Conf, producer string, m *metrics.Metrics) (spotlight.Source, error) {
	key := root.MayFirst("", "GEMINI_API_KEY", "API_KEY")
	if key == "" {
		return nil, nil
	}
	o := gemini.Options{
		APIKey:  key,
		BaseURL: spCfg.MayString("BASE_URL", gemini.DefaultBaseURL),
		Model:   spCfg.MayString("MODEL", ""),
		OnCall:  m.UpstreamCall,
	}
	if producer == "genai" {
		return gemini.NewGenAI(ctx, o)
	}
	return gemini.NewREST(o), nil
}

func metricsIf(on bool, m *metrics.Metrics) *metrics.Metrics {
	if on {
		return m
	}
	return nil
}
