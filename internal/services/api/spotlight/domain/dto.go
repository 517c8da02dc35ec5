// Package domain holds spotlight DTOs and ports
package domain

import (
	"time"

	"diwan/internal/core/spotlight"
)

// Request is the optional POST body
type Request struct {
	Topic string `json:"topic" validate:"max=200" example:"youth voter registration"`
}

// Response wraps the resolved record
type Response struct {
	Spotlight spotlight.Record `json:"spotlight"`
}

// Event is one resolution outcome as stored for analysis
type Event struct {
	At        time.Time
	RequestID string
	Topic     string
	Strategy  string
	Reason    string
	Degraded  bool
	ElapsedMs uint32
}
