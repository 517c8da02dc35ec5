package spotlight

import (
	"context"
	"errors"
	"time"

	"diwan/internal/platform/logger"
)

// Reasons a strategy gives up
const (
	ReasonNoCredential = "missing credential"
	ReasonQuota        = "quota exhausted"
	ReasonTimeout      = "upstream timeout"
	ReasonUpstream     = "upstream error"
	ReasonMalformed    = "malformed payload"
)

// Miss is returned by a strategy that could not produce a record
type Miss struct {
	Strategy string
	Reason   string
	Err      error
}

func (m *Miss) Error() string {
	msg := m.Strategy + ": " + m.Reason
	if m.Err != nil {
		msg += ": " + m.Err.Error()
	}
	return msg
}

func (m *Miss) Unwrap() error { return m.Err }

// Strategy is one link in the resolution chain
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, topic string) (Record, error)
}

// Source produces raw text for a prompt; one call, no retries
type Source interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Shape() Shape
}

// Budget gates upstream calls; a Redis or local limiter satisfies it
type Budget interface {
	Allow(ctx context.Context) (bool, error)
}

// UpstreamOptions tunes the upstream strategy
type UpstreamOptions struct {
	// Budget is optional
	Budget Budget
	// Timeout bounds the single upstream call; 0 leaves it to the transport and the caller
	Timeout time.Duration
}

// Upstream asks a Source for a record
type Upstream struct {
	src Source
	opt UpstreamOptions
}

// NewUpstream builds the upstream strategy; a nil src means no credential is configured
func NewUpstream(src Source, opt UpstreamOptions) *Upstream {
	return &Upstream{src: src, opt: opt}
}

// Name implements Strategy
func (u *Upstream) Name() string { return "upstream" }

// Resolve implements Strategy
func (u *Upstream) Resolve(ctx context.Context, topic string) (Record, error) {
	if u.src == nil {
		return Record{}, u.miss(ReasonNoCredential, nil)
	}
	if u.opt.Budget != nil {
		ok, err := u.opt.Budget.Allow(ctx)
		if err != nil {
			logger.C(ctx).Debug().Err(err).Msg("spotlight budget check failed open")
		}
		if !ok {
			return Record{}, u.miss(ReasonQuota, nil)
		}
	}

	cctx := ctx
	if u.opt.Timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, u.opt.Timeout)
		defer cancel()
	}

	text, err := u.src.Generate(cctx, Prompt(u.src.Shape(), topic))
	if err != nil {
		if ctx.Err() == nil && errors.Is(cctx.Err(), context.DeadlineExceeded) {
			return Record{}, u.miss(ReasonTimeout, err)
		}
		return Record{}, u.miss(ReasonUpstream, err)
	}

	switch v := Validate(text, u.src.Shape()).(type) {
	case Valid:
		return v.Record, nil
	case Invalid:
		return Record{}, u.miss(ReasonMalformed, errors.New(v.Reason))
	}
	return Record{}, u.miss(ReasonMalformed, nil)
}

func (u *Upstream) miss(reason string, err error) *Miss {
	return &Miss{Strategy: u.Name(), Reason: reason, Err: err}
}

// Static always answers with Fallback
type Static struct{}

// Name implements Strategy
func (Static) Name() string { return "static" }

// Resolve implements Strategy
func (Static) Resolve(context.Context, string) (Record, error) { return Fallback(), nil }
