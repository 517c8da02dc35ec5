package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Spotlight(ctx context.Context, topic string) (Response, error)
}

// EventWriter persists batches of outcome events
type EventWriter interface {
	WriteEvents(ctx context.Context, evs []Event) error
}
