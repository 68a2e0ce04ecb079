package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"searchrank/config"
	"searchrank/internal/adapter/analyzer"
	"searchrank/internal/adapter/fetcher"
	"searchrank/internal/adapter/filter"
	"searchrank/internal/adapter/memstore"
	"searchrank/internal/adapter/ranker"
	"searchrank/internal/adapter/store"
	"searchrank/internal/adapter/vectorizer"
	"searchrank/internal/domain"
	"searchrank/internal/port"
	"searchrank/internal/usecase"
)

// service is the fully wired recommendation pipeline shared by every command.
type service struct {
	recommender *usecase.RecommendUseCase
	vocabulary  port.VocabularyStore
}

func (s *service) Close() error {
	if s.vocabulary == nil {
		return nil
	}
	return s.vocabulary.Close()
}

// buildService wires tokenizer, vectorizer, ranker, fetcher chain, link filter
// and vocabulary store from cfg. A non-empty candidatesFile replaces the
// search provider with a fixed candidate list.
func buildService(ctx context.Context, cfg *config.Config, dir, candidatesFile string, logger *zerolog.Logger) (*service, error) {
	tokenizer := analyzer.NewTokenizer(cfg.Rank.Stemming, cfg.Rank.Stopwords)

	vocab, err := openVocabulary(cfg.Rank.Vocabulary, dir)
	if err != nil {
		return nil, err
	}

	var opts []vectorizer.Option
	if vocab != nil {
		opts = append(opts, vectorizer.WithPriorFrequencies(vocab))
	}
	rk := ranker.NewRelevanceRanker(vectorizer.New(tokenizer, opts...), cfg.Rank.TopK)

	f, err := buildFetcher(ctx, cfg.Search, candidatesFile, logger)
	if err != nil {
		if vocab != nil {
			vocab.Close()
		}
		return nil, err
	}

	uc := usecase.NewRecommendUseCase(f, rk, usecase.Options{
		Filter:       filter.NewLinkFilter(cfg.Search.ExcludeLinks),
		Vocabulary:   vocab,
		Tokenizer:    tokenizer,
		NumResults:   cfg.Search.NumResults,
		FetchTimeout: cfg.Search.Timeout,
		Logger:       logger,
	})

	logger.Debug().
		Str("provider", cfg.Search.Provider).
		Str("vocabulary", cfg.Rank.Vocabulary.Mode).
		Bool("stemming", cfg.Rank.Stemming).
		Bool("stopwords", cfg.Rank.Stopwords).
		Msg("Pipeline ready")

	return &service{recommender: uc, vocabulary: vocab}, nil
}

func openVocabulary(vc config.VocabularyConfig, dir string) (port.VocabularyStore, error) {
	switch vc.Mode {
	case config.VocabularyMemory:
		return memstore.NewVocabularyStore(), nil
	case config.VocabularyPersisted:
		path := config.VocabularyPath(dir, vc)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create vocabulary directory: %w", err)
		}
		st, err := store.NewVocabularyStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open vocabulary: %w", err)
		}
		return st, nil
	default:
		return nil, nil
	}
}

func buildFetcher(ctx context.Context, sc config.SearchConfig, candidatesFile string, logger *zerolog.Logger) (port.Fetcher, error) {
	if candidatesFile != "" {
		candidates, err := loadCandidates(candidatesFile)
		if err != nil {
			return nil, err
		}
		return fetcher.NewStaticFetcher(candidates), nil
	}

	if sc.Provider != "google" {
		return nil, fmt.Errorf("unknown search provider %q", sc.Provider)
	}

	apiKey, engineID := sc.Credentials()
	google, err := fetcher.NewGoogleFetcher(ctx, fetcher.GoogleConfig{
		APIKey:   apiKey,
		EngineID: engineID,
		Endpoint: sc.Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client (set %s and %s): %w", sc.APIKeyEnv, sc.EngineIDEnv, err)
	}

	var f port.Fetcher = google
	if sc.RateLimit > 0 {
		f = fetcher.NewRateLimitedFetcher(f, sc.RateLimit, sc.RateBurst)
	}
	return fetcher.NewRetryingFetcher(f, sc.MaxRetries, sc.RetryBackoff, logger), nil
}

// loadCandidates reads a JSON array of {title, snippet, link} objects.
func loadCandidates(path string) ([]domain.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	var candidates []domain.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse candidates %s: %w", path, err)
	}
	return candidates, nil
}
