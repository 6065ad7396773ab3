package admin

import (
	"context"

	"inspectdesk/internal/domain"
	"inspectdesk/internal/repository"
)

// UserRepository is the account storage surface user administration needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q repository.ListQuery) ([]domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
}
