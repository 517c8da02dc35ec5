// Package domain holds statistics DTOs
package domain

import (
	"time"

	"diwan/internal/catalog"
	"diwan/internal/core/candidates"
)

// Overview is the dashboard payload
type Overview struct {
	Statistics []catalog.Statistic    `json:"statistics"`
	Turnout    []catalog.TurnoutPoint `json:"turnout"`
	Highlights []catalog.Highlight    `json:"highlights"`
	Breakdown  candidates.Breakdown   `json:"breakdown"`
}

// Countdown is the time left until polls open
type Countdown struct {
	ElectionDate time.Time `json:"election_date" example:"2025-11-11T00:00:00Z"`
	Days         int       `json:"days" example:"12"`
	Hours        int       `json:"hours" example:"4"`
	Minutes      int       `json:"minutes" example:"30"`
	Seconds      int       `json:"seconds" example:"9"`
	Passed       bool      `json:"passed" example:"false"`
}
