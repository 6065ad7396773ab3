package admin

import (
	"context"
	"errors"
	"strings"

	"inspectdesk/internal/domain"
	"inspectdesk/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service implements user administration. Listing degrades by privilege:
// administrators see full accounts, everyone else gets the plain profile
// projection instead of an error.
type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// ListAccounts is the privileged listing with every account field.
func (s *Service) ListAccounts(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx, repository.ListQuery{OrderBy: "name"})
}

// ListProfiles is the fallback read for non-admin callers.
func (s *Service) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return s.users.ListProfiles(ctx)
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	role := domain.RoleUser
	if req.Role != "" {
		role = domain.UserRole(req.Role)
		if !validRole(role) {
			return nil, ErrInvalidRole
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		Department:   req.Department,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !validRole(role) {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, callerID, id int64) error {
	if callerID == id {
		return ErrCannotDeleteSelf
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.users.Delete(ctx, id)
}

func validRole(role domain.UserRole) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleUser:
		return true
	}
	return false
}
