// Package service assembles the national statistics dashboard
package service

import (
	"context"
	"time"

	"diwan/internal/catalog"
	"diwan/internal/core/candidates"
	"diwan/internal/services/api/statistics/domain"
)

// Service defines the statistics service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	cat *catalog.Catalog
	eng *candidates.Engine
	now func() time.Time
}

// New constructs the service; now defaults to time.Now
func New(cat *catalog.Catalog, eng *candidates.Engine, now func() time.Time) *Svc {
	if cat == nil || eng == nil {
		panic("statistics.Service requires a Catalog and an Engine")
	}
	if now == nil {
		now = time.Now
	}
	return &Svc{cat: cat, eng: eng, now: now}
}

// Overview returns stats, turnout, highlights and the candidate breakdown
func (s *Svc) Overview(context.Context) (domain.Overview, error) {
	return domain.Overview{
		Statistics: s.cat.Statistics(),
		Turnout:    s.cat.Turnout(),
		Highlights: s.cat.Highlights(),
		Breakdown:  s.eng.Breakdown(),
	}, nil
}

// Countdown splits the time left until the election; zero and passed once it starts
func (s *Svc) Countdown(context.Context) (domain.Countdown, error) {
	return Until(s.cat.ElectionDate(), s.now()), nil
}

// Until is the countdown from now to at, truncated to whole seconds
func Until(at, now time.Time) domain.Countdown {
	out := domain.Countdown{ElectionDate: at.UTC()}
	left := at.Sub(now)
	if left <= 0 {
		out.Passed = true
		return out
	}
	secs := int64(left / time.Second)
	out.Days = int(secs / 86400)
	out.Hours = int(secs % 86400 / 3600)
	out.Minutes = int(secs % 3600 / 60)
	out.Seconds = int(secs % 60)
	return out
}
