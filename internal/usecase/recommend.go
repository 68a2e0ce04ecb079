package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"searchrank/internal/domain"
	"searchrank/internal/port"
)

// RecommendUseCase fetches candidates for a query and ranks them.
type RecommendUseCase struct {
	fetcher      port.Fetcher
	filter       port.CandidateFilter
	ranker       port.Ranker
	vocabulary   port.VocabularyStore
	tokenizer    port.Tokenizer
	numResults   int
	fetchTimeout time.Duration
	logger       *zerolog.Logger
}

// Options configures a RecommendUseCase.
type Options struct {
	Filter       port.CandidateFilter
	Vocabulary   port.VocabularyStore
	Tokenizer    port.Tokenizer // required when Vocabulary is set
	NumResults   int
	FetchTimeout time.Duration
	Logger       *zerolog.Logger
}

// NewRecommendUseCase creates a new recommend use case.
func NewRecommendUseCase(fetcher port.Fetcher, ranker port.Ranker, opts Options) *RecommendUseCase {
	if opts.NumResults <= 0 {
		opts.NumResults = 10
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}

	return &RecommendUseCase{
		fetcher:      fetcher,
		filter:       opts.Filter,
		ranker:       ranker,
		vocabulary:   opts.Vocabulary,
		tokenizer:    opts.Tokenizer,
		numResults:   opts.NumResults,
		fetchTimeout: opts.FetchTimeout,
		logger:       opts.Logger,
	}
}

// Recommend returns the topK most relevant search results for query.
// Errors always match one of the domain sentinels.
func (u *RecommendUseCase) Recommend(ctx context.Context, query string, topK int) ([]domain.RankedResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidQuery
	}

	candidates, err := u.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	if u.filter != nil {
		before := len(candidates)
		candidates = u.filter.Filter(candidates)
		if dropped := before - len(candidates); dropped > 0 {
			u.logger.Debug().Int("dropped", dropped).Msg("Excluded candidates by link")
		}
	}

	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}

	results, err := u.ranker.Rank(query, candidates, topK)
	if err != nil {
		return nil, normalize(err, domain.ErrSimilarityUnavailable)
	}

	u.observe(query, candidates)

	return results, nil
}

func (u *RecommendUseCase) fetch(ctx context.Context, query string) ([]domain.Candidate, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, u.fetchTimeout)
	defer cancel()

	candidates, err := u.fetcher.Search(fetchCtx, query, u.numResults)
	if err != nil {
		if errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out after %s", domain.ErrFetchFailure, u.fetchTimeout)
		}
		return nil, normalize(err, domain.ErrFetchFailure)
	}
	return candidates, nil
}

// observe feeds the candidate term sets into the vocabulary store. A store
// failure never fails the request.
func (u *RecommendUseCase) observe(query string, candidates []domain.Candidate) {
	if u.vocabulary == nil || u.tokenizer == nil {
		return
	}
	if err := u.vocabulary.Observe(u.termSets(candidates)); err != nil {
		u.logger.Warn().Err(err).Str("query", query).Msg("Failed to update vocabulary")
	}
}

// normalize keeps err when it already carries a domain sentinel and wraps it
// with fallback otherwise.
func normalize(err, fallback error) error {
	for _, sentinel := range []error{
		domain.ErrInvalidQuery,
		domain.ErrNoCandidates,
		domain.ErrFetchFailure,
		domain.ErrSimilarityUnavailable,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", fallback, err)
}

func (u *RecommendUseCase) termSets(candidates []domain.Candidate) [][]string {
	sets := make([][]string, len(candidates))
	for i, c := range candidates {
		sets[i] = u.tokenizer.TermSet(c.Text())
	}
	return sets
}
