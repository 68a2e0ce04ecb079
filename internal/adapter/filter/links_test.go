package filter

import (
	"testing"

	"searchrank/internal/domain"
)

func TestLinkFilter(t *testing.T) {
	candidates := []domain.Candidate{
		{Title: "pin", Link: "https://www.pinterest.com/pin/123"},
		{Title: "docs", Link: "https://go.dev/doc/effective_go"},
		{Title: "ads", Link: "https://Example.com/ads/banner"},
		{Title: "home", Link: "https://example.com/"},
		{Title: "missing", Link: domain.NoLink},
	}

	f := NewLinkFilter([]string{"*.pinterest.com/**", "example.com/ads/**"})
	kept := f.Filter(candidates)

	want := []string{"docs", "home", "missing"}
	if len(kept) != len(want) {
		t.Fatalf("expected %d candidates, got %d: %v", len(want), len(kept), kept)
	}
	for i, c := range kept {
		if c.Title != want[i] {
			t.Errorf("kept[%d] = %s, want %s", i, c.Title, want[i])
		}
	}
}

func TestLinkFilter_NoPatterns(t *testing.T) {
	candidates := []domain.Candidate{{Link: "https://a.com"}, {Link: "https://b.com"}}

	kept := NewLinkFilter(nil).Filter(candidates)
	if len(kept) != 2 {
		t.Errorf("expected all candidates kept, got %d", len(kept))
	}
}

func TestLinkFilter_InvalidPatternIgnored(t *testing.T) {
	f := NewLinkFilter([]string{"[", "  "})
	if len(f.excludes) != 0 {
		t.Errorf("expected invalid patterns dropped, got %v", f.excludes)
	}
}
