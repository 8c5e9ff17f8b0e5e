// Package throttle spaces outbound requests so that at most R are dispatched
// per second. It wraps a burst-1 token bucket: every dispatch, throttled or
// not, consumes the single slot, so the next Wait is measured from the latest
// dispatch.
package throttle

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a minimum interval of 1/R between dispatches.
type Limiter struct {
	mu  sync.Mutex
	rps float64
	lim *rate.Limiter
}

// New returns a Limiter for rps requests per second. rps <= 0 disables
// throttling.
func New(rps float64) *Limiter {
	return &Limiter{rps: normalize(rps), lim: rate.NewLimiter(limitFor(rps), 1)}
}

// Wait reserves the next dispatch slot and sleeps until it is due. It returns
// the time slept. The caller is expected to dispatch right after Wait returns
// nil. If ctx ends first the reservation is released and ctx.Err() returned.
func (l *Limiter) Wait(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r := l.limiter().Reserve()
	if !r.OK() {
		// Only possible with a zero limit, which New never configures.
		return 0, nil
	}
	delay := r.Delay()
	if delay <= 0 {
		return 0, nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return delay, nil
	case <-ctx.Done():
		r.Cancel()
		return 0, ctx.Err()
	}
}

// Delay reports how long a Wait issued now would sleep, without reserving.
func (l *Limiter) Delay() time.Duration {
	lim := l.limiter()
	now := time.Now()
	r := lim.ReserveN(now, 1)
	d := r.DelayFrom(now)
	r.CancelAt(now)
	return d
}

// Record books a dispatch that did not go through Wait, such as a retry after
// the remote service answered 429.
func (l *Limiter) Record() {
	_ = l.limiter().Reserve()
}

// SetRate changes the rate; rps <= 0 disables throttling.
func (l *Limiter) SetRate(rps float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rps = normalize(rps)
	l.lim.SetLimit(limitFor(rps))
}

// Rate returns the configured requests per second, 0 when disabled.
func (l *Limiter) Rate() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rps
}

// Interval is the minimum spacing between dispatches, 0 when disabled.
func (l *Limiter) Interval() time.Duration {
	rps := l.Rate()
	if rps == 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / rps)
}

func (l *Limiter) limiter() *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lim
}

func normalize(rps float64) float64 {
	if rps <= 0 || math.IsNaN(rps) || math.IsInf(rps, 0) {
		return 0
	}
	return rps
}

func limitFor(rps float64) rate.Limit {
	if normalize(rps) == 0 {
		return rate.Inf
	}
	return rate.Limit(rps)
}
