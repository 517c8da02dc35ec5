package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"diwan/internal/platform/config"
	"diwan/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Server owns the root chi mux and the listener
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer reads API_PORT and the timeouts from cfg; opts see the mux before any route
// WRITE_TIMEOUT defaults high enough for a spotlight call that waits on the model
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{mux: m, srv: &stdhttp.Server{
		Addr:              cfg.MayString("API_PORT", ":4000"),
		Handler:           m,
		ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 120*time.Second),
	}}
}

func (s *Server) Router() Router { return AdaptChi(s.mux) }
func (s *Server) Addr() string   { return s.srv.Addr }

// Run blocks until the listener fails or Shutdown is called; the latter returns nil
func (s *Server) Run(ctx context.Context) error {
	logger.C(ctx).Info().Str("addr", s.srv.Addr).Msg("http listening")
	if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

// MountProfiler serves net/http/pprof under prefix when enabled
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	r.Handle(prefix+"/*", stdhttp.StripPrefix(prefix, chimw.Profiler()))
}
