package vectorizer

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"searchrank/internal/port"
)

// ErrEmptyVocabulary is returned when no text in the corpus yields a term.
var ErrEmptyVocabulary = errors.New("empty vocabulary")

// Entry is one non-zero component of a sparse vector.
type Entry struct {
	Index  int
	Weight float64
}

// Vector is a sparse vector with entries sorted by Index.
type Vector []Entry

// Matrix holds one row per input text over a shared vocabulary.
type Matrix struct {
	Vocabulary []string
	Rows       []Vector
}

// TFIDF builds term-frequency / inverse-document-frequency vectors.
//
// Term frequency is the raw count, idf is the smoothed ln((1+n)/(1+df))+1
// and every row is L2-normalised.
type TFIDF struct {
	tokenizer port.Tokenizer
	prior     port.FrequencySource
}

type Option func(*TFIDF)

// WithPriorFrequencies adds document frequencies observed outside the corpus
// to the idf computation.
func WithPriorFrequencies(src port.FrequencySource) Option {
	return func(v *TFIDF) {
		v.prior = src
	}
}

func New(tokenizer port.Tokenizer, opts ...Option) *TFIDF {
	v := &TFIDF{tokenizer: tokenizer}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// FitTransform derives the vocabulary from texts and returns their vectors
// in input order.
func (v *TFIDF) FitTransform(texts []string) (*Matrix, error) {
	docs := make([][]string, len(texts))
	df := make(map[string]int)

	for i, text := range texts {
		tokens := v.tokenizer.Tokenize(text)
		docs[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	n := len(texts)
	if v.prior != nil {
		stats, err := v.prior.Frequencies(vocab)
		if err != nil {
			return nil, fmt.Errorf("failed to load prior frequencies: %w", err)
		}
		n += stats.Documents
		for term, count := range stats.Frequencies {
			if _, ok := df[term]; ok {
				df[term] += count
			}
		}
	}

	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	rows := make([]Vector, len(docs))
	for i, tokens := range docs {
		rows[i] = weigh(tokens, index, idf)
	}

	return &Matrix{Vocabulary: vocab, Rows: rows}, nil
}

func weigh(tokens []string, index map[string]int, idf []float64) Vector {
	counts := make(map[int]int, len(tokens))
	for _, tok := range tokens {
		counts[index[tok]]++
	}

	vec := make(Vector, 0, len(counts))
	for idx, count := range counts {
		vec = append(vec, Entry{Index: idx, Weight: float64(count) * idf[idx]})
	}
	sort.Slice(vec, func(i, j int) bool {
		return vec[i].Index < vec[j].Index
	})

	norm := vec.Norm()
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i].Weight /= norm
	}
	return vec
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, e := range v {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

// Cosine returns (a·b)/(‖a‖·‖b‖), or 0 when either vector has zero norm.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}

	dot := 0.0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index == b[j].Index:
			dot += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].Index < b[j].Index:
			i++
		default:
			j++
		}
	}

	return dot / (na * nb)
}
