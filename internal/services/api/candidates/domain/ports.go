package domain

import (
	"context"
	"net/url"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	List(ctx context.Context, q url.Values) (ListResult, error)
	Facets(ctx context.Context) (Facets, error)
	ByID(ctx context.Context, id string) (Candidate, error)
}
