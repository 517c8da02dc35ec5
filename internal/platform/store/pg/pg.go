// Package pg opens a pgx pool that waits for the server and can log its queries
package pg

import (
	"context"
	"fmt"
	"time"

	"diwan/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	AppName  string
	MaxConns int32
	// LogSQL logs every statement; otherwise only slow or failed ones
	LogSQL bool
	// SlowMs marks statements at or above it as slow; 0 disables
	SlowMs int
}

// connect attempts and the backoff between them; a cold container takes a few seconds
var (
	attempts   = 20
	firstDelay = 150 * time.Millisecond
	maxDelay   = 2 * time.Second
)

// Open parses cfg, builds the pool, and pings with backoff until the server answers
func Open(ctx context.Context, cfg Config, log logger.Logger) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.LogSQL || cfg.SlowMs > 0 {
		pc.ConnConfig.Tracer = newQueryLog(log, cfg.LogSQL, time.Duration(cfg.SlowMs)*time.Millisecond)
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := waitReady(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func waitReady(ctx context.Context, pool *pgxpool.Pool) error {
	delay := firstDelay
	var last error
	for range attempts {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		last = pool.Ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, maxDelay)
	}
	return fmt.Errorf("no answer after %d pings: %w", attempts, last)
}
