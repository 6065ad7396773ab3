package orders

import (
	"context"

	"inspectdesk/internal/domain"
	"inspectdesk/internal/repository"
)

// OrderRepository is the storage surface the order workflows need.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.ServiceOrder) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceOrder, error)
	Update(ctx context.Context, order *domain.ServiceOrder) error
	Delete(ctx context.Context, id int64) error
	GetRow(ctx context.Context, id int64) (*domain.OrderRow, error)
	ListRows(ctx context.Context, q repository.OrderListQuery) ([]domain.OrderRow, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// Publisher pushes change events to connected dashboards.
type Publisher interface {
	Publish(resource, action string, id int64)
}
