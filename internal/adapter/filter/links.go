package filter

import (
	"net/url"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"searchrank/internal/domain"
)

// LinkFilter drops candidates whose link matches an exclude pattern.
// Patterns are doublestar globs matched against "host/path", for example
// "*.pinterest.com/**" or "example.com/ads/**".
type LinkFilter struct {
	excludes []string
}

func NewLinkFilter(excludes []string) *LinkFilter {
	patterns := make([]string, 0, len(excludes))
	for _, p := range excludes {
		p = strings.TrimSpace(p)
		if p != "" && doublestar.ValidatePattern(p) {
			patterns = append(patterns, strings.ToLower(p))
		}
	}
	return &LinkFilter{excludes: patterns}
}

// Filter returns the candidates that are kept, in their original order.
func (f *LinkFilter) Filter(candidates []domain.Candidate) []domain.Candidate {
	if len(f.excludes) == 0 {
		return candidates
	}

	kept := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if f.excluded(c.Link) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func (f *LinkFilter) excluded(link string) bool {
	target, ok := matchTarget(link)
	if !ok {
		return false
	}
	for _, pattern := range f.excludes {
		matched, err := doublestar.Match(pattern, target)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func matchTarget(link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "", false
	}
	return strings.ToLower(u.Hostname()) + "/" + strings.TrimPrefix(u.EscapedPath(), "/"), true
}
