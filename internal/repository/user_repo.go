package repository

import (
	"context"
	"strings"

	"inspectdesk/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	*Store[domain.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Store: NewStore[domain.User](db)}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	tx := r.DB().WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := r.DB().WithContext(ctx).Model(&domain.User{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

// ListProfiles is the plain table read non-admin callers fall back to.
func (r *UserRepository) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	var profiles []domain.Profile
	tx := r.DB().WithContext(ctx).Model(&domain.User{}).
		Select("id, name, email, role, department, active").
		Order("name").
		Scan(&profiles)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return profiles, nil
}
