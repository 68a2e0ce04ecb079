package ranker

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"searchrank/internal/adapter/vectorizer"
	"searchrank/internal/domain"
)

// DefaultTopK is used when Rank is called with a non-positive topK.
const DefaultTopK = 3

const scorePrecision = 1e4

// RelevanceRanker scores candidates against the query with TF-IDF cosine
// similarity over a vocabulary built from the query and the candidates.
type RelevanceRanker struct {
	vectorizer  *vectorizer.TFIDF
	defaultTopK int
}

// NewRelevanceRanker creates a new relevance ranker.
func NewRelevanceRanker(v *vectorizer.TFIDF, defaultTopK int) *RelevanceRanker {
	if defaultTopK <= 0 {
		defaultTopK = DefaultTopK
	}
	return &RelevanceRanker{
		vectorizer:  v,
		defaultTopK: defaultTopK,
	}
}

// Rank returns the topK candidates ordered by descending similarity.
// Equal scores keep their fetch order.
func (r *RelevanceRanker) Rank(query string, candidates []domain.Candidate, topK int) ([]domain.RankedResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidQuery
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}
	if topK <= 0 {
		topK = r.defaultTopK
	}

	scored, err := r.Score(query, candidates)
	if err != nil {
		return nil, err
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Index < scored[j].Index
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	results := make([]domain.RankedResult, len(scored))
	for i, sc := range scored {
		results[i] = domain.RankedResult{
			Rank:    i + 1,
			Score:   roundScore(sc.Score),
			Title:   sc.Candidate.Title,
			Snippet: sc.Candidate.Snippet,
			Link:    sc.Candidate.Link,
		}
	}

	return results, nil
}

// Score computes one similarity per candidate, in candidate order.
func (r *RelevanceRanker) Score(query string, candidates []domain.Candidate) ([]domain.ScoredCandidate, error) {
	m, err := r.vectorizer.FitTransform(BuildCorpus(query, candidates))
	if err != nil {
		if errors.Is(err, vectorizer.ErrEmptyVocabulary) {
			return nil, fmt.Errorf("%w: %v", domain.ErrSimilarityUnavailable, err)
		}
		return nil, fmt.Errorf("%w: vectorization failed: %v", domain.ErrSimilarityUnavailable, err)
	}

	if len(m.Rows) != len(candidates)+1 {
		return nil, fmt.Errorf("%w: got %d vectors for %d candidates", domain.ErrSimilarityUnavailable, len(m.Rows)-1, len(candidates))
	}

	scored := make([]domain.ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = domain.ScoredCandidate{
			Candidate: c,
			Index:     i,
			Score:     clamp(vectorizer.Cosine(m.Rows[0], m.Rows[i+1])),
		}
	}

	return scored, nil
}

// BuildCorpus places the query at position 0 followed by every candidate's
// title and snippet in input order.
func BuildCorpus(query string, candidates []domain.Candidate) []string {
	corpus := make([]string, 0, len(candidates)+1)
	corpus = append(corpus, query)
	for _, c := range candidates {
		corpus = append(corpus, c.Text())
	}
	return corpus
}

func clamp(score float64) float64 {
	if score < 0 || math.IsNaN(score) {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// roundScore rounds half away from zero to four decimal places.
func roundScore(score float64) float64 {
	return math.Round(score*scorePrecision) / scorePrecision
}
