package port

import "searchrank/internal/domain"

// FrequencySource provides document frequencies gathered outside the current corpus.
type FrequencySource interface {
	Frequencies(terms []string) (domain.VocabularyStats, error)
}

// VocabularyStore accumulates document frequencies across ranking calls.
type VocabularyStore interface {
	FrequencySource

	// Observe records one document per term set. Each set holds distinct terms.
	Observe(termSets [][]string) error

	Close() error
}
