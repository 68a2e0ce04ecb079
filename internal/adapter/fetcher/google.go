package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"searchrank/internal/domain"
)

// MaxResultsPerRequest is the Custom Search API limit for num.
const MaxResultsPerRequest = 10

// GoogleConfig holds the credentials and endpoint of a Custom Search engine.
type GoogleConfig struct {
	APIKey   string
	EngineID string
	// Endpoint overrides the API base URL; empty uses the public endpoint.
	Endpoint string
}

// GoogleFetcher retrieves candidates from the Google Custom Search JSON API.
type GoogleFetcher struct {
	service  *customsearch.Service
	engineID string
}

// NewGoogleFetcher creates a new Google Custom Search fetcher.
func NewGoogleFetcher(ctx context.Context, cfg GoogleConfig) (*GoogleFetcher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("google search: API key is required")
	}
	if cfg.EngineID == "" {
		return nil, fmt.Errorf("google search: engine ID is required")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create custom search service: %w", err)
	}

	return &GoogleFetcher{
		service:  svc,
		engineID: cfg.EngineID,
	}, nil
}

// Search queries the engine and converts each item into a Candidate.
func (f *GoogleFetcher) Search(ctx context.Context, query string, numResults int) ([]domain.Candidate, error) {
	numResults = clampResults(numResults)

	res, err := f.service.Cse.List().
		Q(query).
		Cx(f.engineID).
		Num(int64(numResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, newProviderError(err)
	}

	candidates := make([]domain.Candidate, 0, len(res.Items))
	for _, item := range res.Items {
		if item == nil {
			continue
		}
		candidates = append(candidates, WithPlaceholders(domain.Candidate{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		}))
	}

	return candidates, nil
}

func clampResults(n int) int {
	if n <= 0 || n > MaxResultsPerRequest {
		return MaxResultsPerRequest
	}
	return n
}

// WithPlaceholders fills empty candidate fields with the domain placeholders.
func WithPlaceholders(c domain.Candidate) domain.Candidate {
	return domain.Candidate{
		Title:   orPlaceholder(c.Title, domain.NoTitle),
		Snippet: orPlaceholder(c.Snippet, domain.NoSnippet),
		Link:    orPlaceholder(c.Link, domain.NoLink),
	}
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

// ProviderError is a search provider failure. It matches
// domain.ErrFetchFailure and keeps the provider detail for logging only.
type ProviderError struct {
	StatusCode int
	Err        error
}

func newProviderError(err error) *ProviderError {
	pe := &ProviderError{Err: err}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		pe.StatusCode = gerr.Code
	}
	return pe
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d", domain.ErrFetchFailure, e.StatusCode)
	}
	return domain.ErrFetchFailure.Error()
}

func (e *ProviderError) Is(target error) bool {
	return target == domain.ErrFetchFailure
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Transient reports whether retrying the request may succeed: network
// failures and 5xx responses. Auth, quota and request errors are final.
func (e *ProviderError) Transient() bool {
	if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) {
		return false
	}
	if e.StatusCode == 0 {
		return true
	}
	return e.StatusCode >= http.StatusInternalServerError
}

// IsTransient reports whether err is a retryable provider failure.
func IsTransient(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Transient()
	}
	return false
}
