package domain

// Placeholders substituted by fetchers when the provider omits a field.
const (
	NoTitle   = "No title available"
	NoSnippet = "No snippet available"
	NoLink    = "No link available"
)

// Candidate is a document returned by the search provider.
type Candidate struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Text returns the string compared against the query.
func (c Candidate) Text() string {
	return c.Title + " " + c.Snippet
}

// ScoredCandidate pairs a candidate with its similarity. Index is the fetch
// position and breaks ties between equal scores.
type ScoredCandidate struct {
	Candidate Candidate
	Index     int
	Score     float64
}

// RankedResult is one entry of the ranked output. Rank is 1-based and
// reflects the sorted position, not the fetch position.
type RankedResult struct {
	Rank    int     `json:"index"`
	Score   float64 `json:"similarity"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Link    string  `json:"link"`
}

// VocabularyStats are document frequencies observed outside the current request.
type VocabularyStats struct {
	Documents   int
	Frequencies map[string]int
}
