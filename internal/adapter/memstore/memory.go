package memstore

import (
	"sync"

	"searchrank/internal/domain"
)

// VocabularyStore keeps document frequencies in process memory.
type VocabularyStore struct {
	mu        sync.RWMutex
	documents int
	df        map[string]int
}

func NewVocabularyStore() *VocabularyStore {
	return &VocabularyStore{
		df: make(map[string]int),
	}
}

func (s *VocabularyStore) Frequencies(terms []string) (domain.VocabularyStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.VocabularyStats{
		Documents:   s.documents,
		Frequencies: make(map[string]int, len(terms)),
	}
	for _, term := range terms {
		if n, ok := s.df[term]; ok {
			stats.Frequencies[term] = n
		}
	}
	return stats, nil
}

// Observe counts every term set as one document. Terms within a set must
// be distinct.
func (s *VocabularyStore) Observe(termSets [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents += len(termSets)
	for _, set := range termSets {
		for _, term := range set {
			s.df[term]++
		}
	}
	return nil
}

func (s *VocabularyStore) Close() error {
	return nil
}
