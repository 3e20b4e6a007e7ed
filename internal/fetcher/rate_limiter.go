package fetcher

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter spaces page fetches out to a fixed requests-per-minute budget.
// The crawl is single-threaded against a single host, so one token bucket
// covers it.
type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(rpm int) *RateLimiter {
	if rpm <= 0 {
		rpm = 60
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
	}
}

func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}
