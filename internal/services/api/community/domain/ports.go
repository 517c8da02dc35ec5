package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	List(ctx context.Context, limit int) ([]Post, error)
	Create(ctx context.Context, in CreateInput) (Post, error)
	Like(ctx context.Context, id string) (LikeState, error)
	Unlike(ctx context.Context, id string) (LikeState, error)
}
