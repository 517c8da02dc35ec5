// Package store opens the optional backends behind small seams repos can fake
package store

import (
	"context"
	"errors"
	"fmt"

	"diwan/internal/platform/logger"
	"diwan/internal/platform/store/ch"
	"diwan/internal/platform/store/pg"
	"diwan/internal/platform/store/rds"

	"github.com/redis/go-redis/v9"
)

// Config selects backends; anything not Enabled stays nil on the Store
type Config struct {
	// AppName shows up in pg_stat_activity and the clickhouse query log
	AppName string

	PG  PGConfig
	CH  CHConfig
	RDS RedisConfig
}

// PGConfig configures the community posts database
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures the spotlight event sink
type CHConfig struct {
	Enabled   bool
	URL       string
	ClientTag string
}

// RedisConfig configures the shared spotlight quota
type RedisConfig struct {
	Enabled bool
	URL     string
	DB      int
}

// Row is one scannable result row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set; Close must be called
type Rows interface {
	Row
	Next() bool
	Err() error
	Close()
}

// CommandTag reports what a write did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the SQL surface repos are bound to
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn in one transaction
// fn returning an error rolls back
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the append-only surface the event sink needs
type Clickhouse interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Insert(ctx context.Context, table string, rows [][]any) error
	Ping(ctx context.Context) error
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Store holds whichever backends were opened
type Store struct {
	Log logger.Logger
	PG  TxRunner
	CH  Clickhouse
	RDS *redis.Client
}

// Option adjusts a Store before backends open
type Option func(*Store)

// WithLogger routes backend logs (SQL tracing, connect lines) to l
func WithLogger(l logger.Logger) Option { return func(s *Store) { s.Log = l } }

var _ Clickhouse = (*ch.CH)(nil)

// Open connects every enabled backend. On failure the ones already open are closed
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}

	fail := func(name string, err error) (*Store, error) {
		_ = s.Close(ctx)
		return nil, fmt.Errorf("store: %s: %w", name, err)
	}

	if cfg.PG.Enabled {
		pool, err := pg.Open(ctx, pg.Config{
			URL:      cfg.PG.URL,
			AppName:  cfg.AppName,
			MaxConns: cfg.PG.MaxConns,
			LogSQL:   cfg.PG.LogSQL,
			SlowMs:   cfg.PG.SlowQueryMs,
		}, s.Log)
		if err != nil {
			return fail("postgres", err)
		}
		s.PG = newPostgres(pool)
	}
	if cfg.CH.Enabled {
		c, err := ch.Open(ctx, ch.Config{URL: cfg.CH.URL, Role: cfg.AppName, Tag: cfg.CH.ClientTag})
		if err != nil {
			return fail("clickhouse", err)
		}
		s.CH = c
	}
	if cfg.RDS.Enabled {
		c, err := rds.Open(ctx, rds.Config{URL: cfg.RDS.URL, DB: cfg.RDS.DB})
		if err != nil {
			return fail("redis", err)
		}
		s.Log.Debug().Str("addr", c.Options().Addr).Int("db", c.Options().DB).Msg("redis connected")
		s.RDS = c
	}
	return s, nil
}

// Check pings each open backend, keyed pg, ch, redis
func (s *Store) Check(ctx context.Context) map[string]error {
	out := map[string]error{}
	if s == nil {
		return out
	}
	if p, ok := s.PG.(Pinger); ok {
		out["pg"] = p.Ping(ctx)
	}
	if s.CH != nil {
		out["ch"] = s.CH.Ping(ctx)
	}
	if s.RDS != nil {
		out["redis"] = s.RDS.Ping(ctx).Err()
	}
	return out
}

// Guard joins every failing Check into one error
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for name, err := range s.Check(ctx) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every open backend
func (s *Store) Close(context.Context) error {
	var errs []error
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if s.RDS != nil {
		errs = append(errs, s.RDS.Close())
	}
	return errors.Join(errs...)
}
