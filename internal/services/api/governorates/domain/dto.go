// Package domain holds governorate DTOs
package domain

import (
	"diwan/internal/catalog"
	"diwan/internal/core/candidates"
)

// Summary is one row of the governorate index
type Summary struct {
	catalog.Governorate
	PopulationLabel string `json:"population_label" example:"8.2M"`
	CandidateCount  int    `json:"candidate_count" example:"1"`
}

// Detail is a governorate with its candidates
type Detail struct {
	Summary
	Candidates []candidates.Candidate `json:"candidates"`
}
