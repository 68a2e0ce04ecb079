package api

import "searchrank/internal/domain"

// RecommendationResponse is the success payload of the recommendation endpoint.
type RecommendationResponse struct {
	Code   int                   `json:"code"`
	Status string                `json:"status"`
	Data   []domain.RankedResult `json:"data"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
