package store

import (
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"searchrank/internal/domain"
)

var (
	bucketTerms  = []byte("terms")
	bucketStats  = []byte("stats")
	keyDocuments = []byte("documents")
)

// VocabularyStore persists document frequencies in a bbolt file so idf
// weights can draw on earlier requests.
type VocabularyStore struct {
	db *bbolt.DB
}

func NewVocabularyStore(path string) (*VocabularyStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketTerms, bucketStats} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &VocabularyStore{db: db}, nil
}

// Frequencies returns the stored document count and the document frequency
// of each requested term. Unknown terms are omitted.
func (s *VocabularyStore) Frequencies(terms []string) (domain.VocabularyStats, error) {
	stats := domain.VocabularyStats{Frequencies: make(map[string]int, len(terms))}

	err := s.db.View(func(tx *bbolt.Tx) error {
		stats.Documents = int(decodeCount(tx.Bucket(bucketStats).Get(keyDocuments)))

		b := tx.Bucket(bucketTerms)
		for _, term := range terms {
			if v := b.Get([]byte(term)); v != nil {
				stats.Frequencies[term] = int(decodeCount(v))
			}
		}
		return nil
	})
	return stats, err
}

// Observe counts every term set as one document. Terms within a set must
// be distinct.
func (s *VocabularyStore) Observe(termSets [][]string) error {
	if len(termSets) == 0 {
		return nil
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		sb := tx.Bucket(bucketStats)
		docs := decodeCount(sb.Get(keyDocuments)) + uint64(len(termSets))
		if err := sb.Put(keyDocuments, encodeCount(docs)); err != nil {
			return err
		}

		tb := tx.Bucket(bucketTerms)
		for _, set := range termSets {
			for _, term := range set {
				key := []byte(term)
				if err := tb.Put(key, encodeCount(decodeCount(tb.Get(key))+1)); err != nil {
					return fmt.Errorf("failed to update term %q: %w", term, err)
				}
			}
		}
		return nil
	})
}

func (s *VocabularyStore) Close() error {
	return s.db.Close()
}

func encodeCount(n uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, n)
	return buf
}

func decodeCount(v []byte) uint64 {
	if len(v) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(v)
}
