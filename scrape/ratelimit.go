// Package scrape contains the scrape-and-reconcile engine: request pacing,
// scraper health tracking, control-tag lifecycle, reconciliation of scraped
// payloads and the per-mode orchestration loops.
package scrape

import (
	"time"
)

// RateLimiter enforces a minimum spacing between outbound scrape requests.
// It is used strictly sequentially by a single orchestration run; there is
// no locking because there is no concurrent caller.
type RateLimiter struct {
	delay time.Duration
	last  time.Time
	sleep func(time.Duration)
	now   func() time.Time
}

// NewRateLimiter creates a limiter spacing calls at least delaySeconds apart.
// A zero or negative delay disables pacing entirely.
func NewRateLimiter(delaySeconds int) *RateLimiter {
	return &RateLimiter{
		delay: time.Duration(delaySeconds) * time.Second,
		sleep: time.Sleep,
		now:   time.Now,
	}
}

// Wait blocks until at least the configured delay has elapsed since the
// previous call, then records the new timestamp. The first call never blocks.
// The comparison works in whole seconds with a one-second rounding margin,
// matching the pacing the remote scraper layer expects.
func (r *RateLimiter) Wait() {
	if r.delay <= 0 {
		return
	}
	if !r.last.IsZero() {
		elapsed := r.now().Unix() - r.last.Unix()
		if remaining := int64(r.delay.Seconds()) - elapsed; remaining > 0 {
			r.sleep(time.Duration(remaining+1) * time.Second)
		}
	}
	r.last = r.now()
}
