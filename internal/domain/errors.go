package domain

import "errors"

var (
	ErrInvalidQuery          = errors.New("query parameter is required")
	ErrNoCandidates          = errors.New("no search results found")
	ErrFetchFailure          = errors.New("search provider request failed")
	ErrSimilarityUnavailable = errors.New("unable to calculate similarity")
)
