package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimited spaces calls to the wrapped client.
type RateLimited struct {
	next    Client
	limiter *rate.Limiter
}

// NewRateLimited allows perMinute calls per minute with the given burst.
// A non-positive perMinute disables limiting.
func NewRateLimited(next Client, perMinute, burst int) *RateLimited {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60.0)
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{next: next, limiter: rate.NewLimiter(limit, burst)}
}

// Complete waits for a token, then delegates.
func (r *RateLimited) Complete(ctx context.Context, req Request) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("llm rate limit: %w", err)
	}
	return r.next.Complete(ctx, req)
}

var _ Client = (*RateLimited)(nil)
