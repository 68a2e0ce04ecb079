package port

import (
	"context"

	"searchrank/internal/domain"
)

// Fetcher retrieves candidate documents for a query from a search provider.
type Fetcher interface {
	// Search returns at most numResults candidates in provider order.
	// Provider failures are reported as domain.ErrFetchFailure.
	Search(ctx context.Context, query string, numResults int) ([]domain.Candidate, error)
}
