package fetcher

import (
	"context"

	"searchrank/internal/domain"
)

// StaticFetcher returns a fixed candidate list for every query. Empty fields
// are replaced with placeholders like any provider result.
type StaticFetcher struct {
	Candidates []domain.Candidate
	Err        error
}

func NewStaticFetcher(candidates []domain.Candidate) *StaticFetcher {
	return &StaticFetcher{Candidates: candidates}
}

func (f *StaticFetcher) Search(ctx context.Context, query string, numResults int) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}

	n := len(f.Candidates)
	if numResults > 0 && numResults < n {
		n = numResults
	}
	out := make([]domain.Candidate, n)
	for i, c := range f.Candidates[:n] {
		out[i] = WithPlaceholders(c)
	}
	return out, nil
}
