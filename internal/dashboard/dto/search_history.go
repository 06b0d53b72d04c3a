package dto

import "time"

// RecentSearchesRequest holds the query parameters of the recent searches endpoint.
type RecentSearchesRequest struct {
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// SearchRecordResponse is one entry of the search history.
type SearchRecordResponse struct {
	ID               uint              `json:"id"`
	Query            string            `json:"query"`
	Ticker           string            `json:"ticker"`
	Statuses         map[string]Status `json:"statuses"`
	DegradedSections []string          `json:"degraded_sections"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ResolveResponse is returned by the ticker resolution endpoint.
type ResolveResponse struct {
	Query  string `json:"query"`
	Ticker string `json:"ticker"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
