package port

import "searchrank/internal/domain"

// Ranker orders candidates by textual relevance to a query.
type Ranker interface {
	Rank(query string, candidates []domain.Candidate, topK int) ([]domain.RankedResult, error)
}

type CandidateFilter interface {
	Filter(candidates []domain.Candidate) []domain.Candidate
}
