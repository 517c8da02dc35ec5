package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"diwan/internal/core/spotlight"
	"diwan/internal/platform/logger"
	pnet "diwan/internal/platform/net"
	"diwan/internal/services/api/spotlight/domain"
)

// SinkOptions tunes the event sink
type SinkOptions struct {
	// Buffer bounds queued events; defaults to 1024
	Buffer int
	// Batch flushes once this many events are queued; defaults to 200
	Batch int
	// Every flushes whatever is queued on this period; defaults to 2s
	Every time.Duration
	// FlushTimeout bounds each write; defaults to 5s
	FlushTimeout time.Duration
}

// Sink batches resolution outcomes into an EventWriter
// Observe never blocks the request path; events are dropped when the buffer is full
type Sink struct {
	w       domain.EventWriter
	opt     SinkOptions
	ch      chan domain.Event
	now     func() time.Time
	dropped atomic.Int64
	done    chan struct{}
	once    sync.Once
}

// NewSink constructs a sink; call Run to start draining
func NewSink(w domain.EventWriter, o SinkOptions) *Sink {
	if w == nil {
		panic("spotlight sink requires an EventWriter")
	}
	if o.Buffer <= 0 {
		o.Buffer = 1024
	}
	if o.Batch <= 0 {
		o.Batch = 200
	}
	if o.Every <= 0 {
		o.Every = 2 * time.Second
	}
	if o.FlushTimeout <= 0 {
		o.FlushTimeout = 5 * time.Second
	}
	return &Sink{
		w:    w,
		opt:  o,
		ch:   make(chan domain.Event, o.Buffer),
		now:  time.Now,
		done: make(chan struct{}),
	}
}

// Observe implements spotlight.Observer
func (s *Sink) Observe(ctx context.Context, o spotlight.Outcome) {
	ev := domain.Event{
		At:        s.now(),
		RequestID: pnet.RequestID(ctx),
		Topic:     o.Topic,
		Strategy:  o.Strategy,
		Reason:    o.Reason,
		Degraded:  o.Degraded,
		ElapsedMs: uint32(o.Elapsed.Milliseconds()),
	}
	select {
	case s.ch <- ev:
	default:
		s.dropped.Add(1)
	}
}

// Dropped reports how many events were discarded on a full buffer
func (s *Sink) Dropped() int64 { return s.dropped.Load() }

// Run drains the buffer until ctx ends, then flushes what is left
func (s *Sink) Run(ctx context.Context) error {
	defer s.once.Do(func() { close(s.done) })
	log := logger.Named("spotlight-sink")
	t := time.NewTicker(s.opt.Every)
	defer t.Stop()

	batch := make([]domain.Event, 0, s.opt.Batch)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opt.FlushTimeout)
		defer cancel()
		if err := s.w.WriteEvents(fctx, batch); err != nil {
			log.Warn().Err(err).Int("events", len(batch)).Msg("spotlight events dropped")
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case ev := <-s.ch:
					batch = append(batch, ev)
					if len(batch) >= s.opt.Batch {
						flush()
					}
				default:
					flush()
					return nil
				}
			}
		case ev := <-s.ch:
			batch = append(batch, ev)
			if len(batch) >= s.opt.Batch {
				flush()
			}
		case <-t.C:
			flush()
		}
	}
}

// Done is closed once Run has returned
func (s *Sink) Done() <-chan struct{} { return s.done }

var _ spotlight.Observer = (*Sink)(nil)
