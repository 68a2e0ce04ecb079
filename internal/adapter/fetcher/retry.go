package fetcher

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"searchrank/internal/domain"
	"searchrank/internal/port"
)

// RetryingFetcher retries transient provider failures with exponential backoff.
type RetryingFetcher struct {
	next       port.Fetcher
	maxRetries int
	initial    time.Duration
	logger     *zerolog.Logger
}

// NewRetryingFetcher wraps next. maxRetries <= 0 disables retries.
func NewRetryingFetcher(next port.Fetcher, maxRetries int, initial time.Duration, logger *zerolog.Logger) *RetryingFetcher {
	if initial <= 0 {
		initial = 200 * time.Millisecond
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &RetryingFetcher{
		next:       next,
		maxRetries: maxRetries,
		initial:    initial,
		logger:     logger,
	}
}

func (f *RetryingFetcher) Search(ctx context.Context, query string, numResults int) ([]domain.Candidate, error) {
	if f.maxRetries <= 0 {
		return f.next.Search(ctx, query, numResults)
	}

	attempt := 0
	operation := func() ([]domain.Candidate, error) {
		attempt++
		candidates, err := f.next.Search(ctx, query, numResults)
		if err == nil {
			return candidates, nil
		}
		if !IsTransient(err) {
			return nil, backoff.Permanent(err)
		}
		f.logger.Warn().Err(err).Int("attempt", attempt).Msg("Transient search failure, retrying")
		return nil, err
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = f.initial

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(uint(f.maxRetries+1)),
	)
}
