package fetcher

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"searchrank/internal/domain"
	"searchrank/internal/port"
)

// RateLimitedFetcher caps outgoing provider requests per second.
type RateLimitedFetcher struct {
	next    port.Fetcher
	limiter *rate.Limiter
}

func NewRateLimitedFetcher(next port.Fetcher, perSecond float64, burst int) *RateLimitedFetcher {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedFetcher{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (f *RateLimitedFetcher) Search(ctx context.Context, query string, numResults int) ([]domain.Candidate, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %v", domain.ErrFetchFailure, err)
	}
	return f.next.Search(ctx, query, numResults)
}
