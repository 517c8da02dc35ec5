package spotlight

import (
	"context"
	"errors"
	"strings"
	"time"

	"diwan/internal/platform/logger"
)

// Outcome describes one completed resolution
type Outcome struct {
	Topic    string
	Strategy string
	// Reason is empty when the first strategy answered
	Reason   string
	Degraded bool
	Elapsed  time.Duration
}

// Observer receives every completed resolution; cancelled ones are not reported
type Observer interface {
	Observe(ctx context.Context, o Outcome)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ctx context.Context, o Outcome)

// Observe implements Observer
func (f ObserverFunc) Observe(ctx context.Context, o Outcome) { f(ctx, o) }

// Observers fans an outcome out to each non nil observer in order
type Observers []Observer

// Observe implements Observer
func (obs Observers) Observe(ctx context.Context, o Outcome) {
	for _, ob := range obs {
		if ob != nil {
			ob.Observe(ctx, o)
		}
	}
}

// Option configures a Resolver
type Option func(*Resolver)

// WithObserver sets the outcome observer
func WithObserver(o Observer) Option { return func(r *Resolver) { r.obs = o } }

// WithLogger pins the logger used for degradation warnings; default is logger.C(ctx)
func WithLogger(l *logger.Logger) Option { return func(r *Resolver) { r.log = l } }

// Resolver walks strategies in order; Static is always appended last
type Resolver struct {
	chain []Strategy
	obs   Observer
	log   *logger.Logger
	now   func() time.Time
}

// NewResolver builds a resolver over the given strategies followed by Static
func NewResolver(strategies []Strategy, opts ...Option) *Resolver {
	chain := make([]Strategy, 0, len(strategies)+1)
	for _, s := range strategies {
		if s != nil {
			chain = append(chain, s)
		}
	}
	chain = append(chain, Static{})

	r := &Resolver{chain: chain, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve returns the first record the chain produces
// the only error is ctx.Err() when the caller goes away first
func (r *Resolver) Resolve(ctx context.Context, topic string) (Record, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = DefaultTopic
	}
	start := r.now()

	var first *Miss
	for _, s := range r.chain {
		if err := ctx.Err(); err != nil {
			return Record{}, err
		}
		rec, err := s.Resolve(ctx, topic)
		if err == nil {
			r.report(ctx, Outcome{
				Topic:    topic,
				Strategy: s.Name(),
				Reason:   reasonOf(first),
				Degraded: first != nil,
				Elapsed:  r.now().Sub(start),
			})
			return rec, nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return Record{}, cerr
		}

		var m *Miss
		if !errors.As(err, &m) {
			m = &Miss{Strategy: s.Name(), Reason: ReasonUpstream, Err: err}
		}
		r.warn(ctx, m)
		if first == nil {
			first = m
		}
	}
	// Static closes the chain
	return Fallback(), nil
}

func (r *Resolver) warn(ctx context.Context, m *Miss) {
	l := r.log
	if l == nil {
		l = logger.C(ctx)
	}
	ev := l.Warn().Str("strategy", m.Strategy).Str("reason", m.Reason)
	if m.Err != nil {
		ev = ev.Err(m.Err)
	}
	ev.Msg("spotlight degraded")
}

func (r *Resolver) report(ctx context.Context, o Outcome) {
	if r.obs != nil {
		r.obs.Observe(ctx, o)
	}
}

func reasonOf(m *Miss) string {
	if m == nil {
		return ""
	}
	return m.Reason
}
