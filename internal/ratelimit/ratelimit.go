package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces emitted matches. A zero Limiter is not usable; call New.
type Limiter struct {
	limiter *rate.Limiter
}

// New returns a limiter allowing matchesPerSecond, with a burst of one match.
// 0 or a negative rate disables limiting.
func New(matchesPerSecond float64) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(toLimit(matchesPerSecond), 1),
	}
}

func toLimit(matchesPerSecond float64) rate.Limit {
	if matchesPerSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(matchesPerSecond)
}

// Wait blocks until the next match may be emitted or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Limit returns the configured rate, 0 when unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}

func (l *Limiter) Unlimited() bool {
	return l.limiter.Limit() == rate.Inf
}
