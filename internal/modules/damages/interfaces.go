package damages

import (
	"context"

	"inspectdesk/internal/domain"
	"inspectdesk/internal/repository"
)

// DamageRepository is the storage surface the damage workflows need.
type DamageRepository interface {
	Create(ctx context.Context, damage *domain.Damage) error
	GetByID(ctx context.Context, id int64) (*domain.Damage, error)
	Update(ctx context.Context, damage *domain.Damage) error
	Delete(ctx context.Context, id int64) error
	GetRow(ctx context.Context, id int64) (*domain.DamageRow, error)
	ListRows(ctx context.Context, q repository.DamageListQuery) ([]domain.DamageRow, error)
}

// Publisher pushes change events to connected dashboards.
type Publisher interface {
	Publish(resource, action string, id int64)
}
