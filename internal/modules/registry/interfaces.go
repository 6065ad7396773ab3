package registry

import (
	"context"

	"inspectdesk/internal/repository"
)

// Store is the slice of the shared repository a resource needs.
type Store[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q repository.ListQuery) ([]T, error)
}

// Publisher pushes change events to connected dashboards.
type Publisher interface {
	Publish(resource, action string, id int64)
}
