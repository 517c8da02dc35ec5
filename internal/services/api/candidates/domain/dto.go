// Package domain holds DTOs for the candidate directory endpoints
package domain

import "diwan/internal/core/candidates"

// Candidate is the wire form of one directory entry
type Candidate = candidates.Candidate

// ListResult is one page of the directory
type ListResult struct {
	Items []Candidate `json:"items"`
	Page  int         `json:"page" example:"1"`
	Limit int         `json:"limit" example:"10"`
	Total int         `json:"total" example:"8"`
	Pages int         `json:"pages" example:"1"`
}

// Facets feeds the filter dropdowns
type Facets struct {
	Parties      []string `json:"parties"`
	Governorates []string `json:"governorates"`
}
