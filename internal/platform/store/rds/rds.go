// Package rds opens a go-redis client from either a redis:// URL or a host:port address
package rds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the redis client
type Config struct {
	// URL is redis://, rediss:// or a bare host:port
	URL string
	// DB applies to bare addresses; URLs carry their own db path
	DB int

	PingTimeout time.Duration
}

// Options turns Config into go-redis options
func Options(cfg Config) (*redis.Options, error) {
	u := strings.TrimSpace(cfg.URL)
	if u == "" {
		return nil, fmt.Errorf("redis: empty url")
	}
	if strings.HasPrefix(u, "redis://") || strings.HasPrefix(u, "rediss://") {
		opt, err := redis.ParseURL(u)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opt, nil
	}
	return &redis.Options{Addr: u, DB: cfg.DB}, nil
}

// Open builds a client and pings it once; the client is closed on ping failure
func Open(ctx context.Context, cfg Config) (*redis.Client, error) {
	opt, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opt.Addr, err)
	}
	return client, nil
}
