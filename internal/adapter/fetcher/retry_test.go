package fetcher

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"searchrank/internal/domain"
)

type scriptedFetcher struct {
	errs  []error
	calls int
}

func (f *scriptedFetcher) Search(ctx context.Context, query string, numResults int) ([]domain.Candidate, error) {
	f.calls++
	if f.calls <= len(f.errs) && f.errs[f.calls-1] != nil {
		return nil, f.errs[f.calls-1]
	}
	return []domain.Candidate{{Title: "ok", Snippet: "ok", Link: "ok"}}, nil
}

func unavailable() error {
	return &ProviderError{StatusCode: http.StatusServiceUnavailable, Err: errors.New("503")}
}

func TestRetryingFetcher_RecoversFromTransient(t *testing.T) {
	next := &scriptedFetcher{errs: []error{unavailable(), unavailable()}}
	f := NewRetryingFetcher(next, 2, time.Millisecond, nil)

	candidates, err := f.Search(context.Background(), "q", 10)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if len(candidates) != 1 {
		t.Errorf("expected 1 candidate, got %d", len(candidates))
	}
	if next.calls != 3 {
		t.Errorf("expected 3 calls, got %d", next.calls)
	}
}

func TestRetryingFetcher_GivesUp(t *testing.T) {
	next := &scriptedFetcher{errs: []error{unavailable(), unavailable(), unavailable(), unavailable()}}
	f := NewRetryingFetcher(next, 2, time.Millisecond, nil)

	_, err := f.Search(context.Background(), "q", 10)
	if !errors.Is(err, domain.ErrFetchFailure) {
		t.Errorf("expected ErrFetchFailure, got %v", err)
	}
	if next.calls != 3 {
		t.Errorf("expected 3 calls, got %d", next.calls)
	}
}

func TestRetryingFetcher_PermanentNotRetried(t *testing.T) {
	quota := &ProviderError{StatusCode: http.StatusTooManyRequests, Err: errors.New("quota")}
	next := &scriptedFetcher{errs: []error{quota}}
	f := NewRetryingFetcher(next, 3, time.Millisecond, nil)

	_, err := f.Search(context.Background(), "q", 10)
	if !errors.Is(err, domain.ErrFetchFailure) {
		t.Errorf("expected ErrFetchFailure, got %v", err)
	}
	if next.calls != 1 {
		t.Errorf("expected a single call for quota errors, got %d", next.calls)
	}
}

func TestRetryingFetcher_Disabled(t *testing.T) {
	next := &scriptedFetcher{errs: []error{unavailable()}}
	f := NewRetryingFetcher(next, 0, time.Millisecond, nil)

	if _, err := f.Search(context.Background(), "q", 10); err == nil {
		t.Error("expected error with retries disabled")
	}
	if next.calls != 1 {
		t.Errorf("expected 1 call, got %d", next.calls)
	}
}

func TestRateLimitedFetcher(t *testing.T) {
	next := &scriptedFetcher{}
	f := NewRateLimitedFetcher(next, 100, 1)

	if _, err := f.Search(context.Background(), "q", 10); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Search(ctx, "q", 10)
	if !errors.Is(err, domain.ErrFetchFailure) {
		t.Errorf("expected ErrFetchFailure for cancelled wait, got %v", err)
	}
	if next.calls != 1 {
		t.Errorf("expected provider to be skipped after failed wait, got %d calls", next.calls)
	}
}

func TestStaticFetcher(t *testing.T) {
	f := NewStaticFetcher([]domain.Candidate{{Title: "a"}, {Title: "b"}, {Title: "c"}})

	got, err := f.Search(context.Background(), "q", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(got))
	}

	got[0].Title = "changed"
	if f.Candidates[0].Title != "a" {
		t.Error("returned slice must not alias fixture")
	}

	f.Err = domain.ErrFetchFailure
	if _, err := f.Search(context.Background(), "q", 2); !errors.Is(err, domain.ErrFetchFailure) {
		t.Errorf("expected configured error, got %v", err)
	}
}

func TestStaticFetcher_Placeholders(t *testing.T) {
	f := NewStaticFetcher([]domain.Candidate{{Title: "machine learning"}, {Snippet: "  ", Link: "https://x.example"}})

	got, err := f.Search(context.Background(), "q", 10)
	if err != nil {
		t.Fatal(err)
	}

	want := []domain.Candidate{
		{Title: "machine learning", Snippet: domain.NoSnippet, Link: domain.NoLink},
		{Title: domain.NoTitle, Snippet: domain.NoSnippet, Link: "https://x.example"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
