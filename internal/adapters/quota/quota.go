// Package quota budgets upstream spotlight calls per minute
//
// Redis gives every replica one shared fixed window; Local is a per process
// token bucket for single instance deployments and tests
package quota

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter answers whether one more upstream call fits the budget
type Limiter interface {
	Allow(ctx context.Context) (bool, error)
}

const window = time.Minute

// counter is the Redis surface the fixed window needs
type counter interface {
	incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type redisCounter struct{ c *redis.Client }

func (r redisCounter) incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := r.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Redis is a fixed one minute window shared through INCR and EXPIRE
type Redis struct {
	ctr       counter
	prefix    string
	perMinute int64
	now       func() time.Time
}

// NewRedis returns nil when perMinute <= 0 or client is nil
func NewRedis(client *redis.Client, prefix string, perMinute int) *Redis {
	if client == nil || perMinute <= 0 {
		return nil
	}
	if prefix == "" {
		prefix = "diwan:spotlight:quota"
	}
	return &Redis{ctr: redisCounter{c: client}, prefix: prefix, perMinute: int64(perMinute), now: time.Now}
}

// Allow counts this call against the current window
// Redis errors fail open; the error is returned for logging only
func (l *Redis) Allow(ctx context.Context) (bool, error) {
	if l == nil {
		return true, nil
	}
	slot := l.now().UTC().Truncate(window).Unix()
	key := l.prefix + ":" + strconv.FormatInt(slot, 10)
	n, err := l.ctr.incr(ctx, key, window+5*time.Second)
	if err != nil {
		return true, err
	}
	return n <= l.perMinute, nil
}

// Local is an in process token bucket refilled at perMinute per minute
type Local struct {
	lim *rate.Limiter
	now func() time.Time
}

// NewLocal returns nil when perMinute <= 0
func NewLocal(perMinute int) *Local {
	if perMinute <= 0 {
		return nil
	}
	return &Local{lim: rate.NewLimiter(rate.Every(window/time.Duration(perMinute)), perMinute), now: time.Now}
}

// Allow takes one token if available
func (l *Local) Allow(context.Context) (bool, error) {
	if l == nil {
		return true, nil
	}
	return l.lim.AllowN(l.now(), 1), nil
}

// New picks Redis when a client is available and Local otherwise; nil means unlimited
func New(client *redis.Client, perMinute int) Limiter {
	if perMinute <= 0 {
		return nil
	}
	if client != nil {
		return NewRedis(client, "", perMinute)
	}
	return NewLocal(perMinute)
}
