package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	List(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, slug string) (Detail, error)
}
