package portalapi

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter paces outbound calls with a token bucket so a burst of member
// requests cannot flood the backend.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows burst calls at once, refilled at requestsPerSecond.
//
//	limiter := NewRateLimiter(20, 10)
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a token is available or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
