package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inspectdesk/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestService_Register_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByEmail", mock.Anything, "test@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	jwtSvc.On("GenerateToken", mock.Anything, "user").Return("fake-jwt-token", nil)

	service := NewService(userRepo, jwtSvc)

	user, token, err := service.Register(context.Background(), RegisterRequest{
		Email:    "Test@Example.com",
		Password: "securepass123",
		Name:     "Test User",
	})

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.Active)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, "fake-jwt-token", token)

	userRepo.AssertExpectations(t)
	jwtSvc.AssertExpectations(t)
}

func TestService_Register_EmailExists(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByEmail", mock.Anything, "exists@example.com").Return(true, nil)

	service := NewService(userRepo, jwtSvc)

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Email:    "exists@example.com",
		Password: "securepass123",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

// The existence check is advisory; when a concurrent registration wins the
// insert, the unique-index violation must map to the same sentinel.
func TestService_Register_DuplicateOnInsert(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByEmail", mock.Anything, "race@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	service := NewService(userRepo, jwtSvc)

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Email:    "race@example.com",
		Password: "securepass123",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	jwtSvc.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestService_Login_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	existing := &domain.User{
		ID:           10,
		Email:        "user@example.com",
		PasswordHash: string(hashed),
		Role:         domain.RoleManager,
		Active:       true,
	}

	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(existing, nil)
	jwtSvc.On("GenerateToken", int64(10), "manager").Return("login-token", nil)

	service := NewService(userRepo, jwtSvc)

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "login-token", result.Token)
	assert.Empty(t, result.User.PasswordHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	existing := &domain.User{
		ID:           11,
		Email:        "user@example.com",
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
		Active:       true,
	}

	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(existing, nil)

	service := NewService(userRepo, jwtSvc)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "battery-staple",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(userRepo, jwtSvc)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_InactiveAccount(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	existing := &domain.User{
		ID:           12,
		Email:        "off@example.com",
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
		Active:       false,
	}

	userRepo.On("GetByEmail", mock.Anything, "off@example.com").Return(existing, nil)

	service := NewService(userRepo, jwtSvc)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "off@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestService_ChangePassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.DefaultCost)
	existing := &domain.User{ID: 20, Email: "user@example.com", PasswordHash: string(hashed)}

	userRepo.On("GetByID", mock.Anything, int64(20)).Return(existing, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-secret")) == nil
	})).Return(nil)

	service := NewService(userRepo, jwtSvc)

	err := service.ChangePassword(context.Background(), 20, ChangePasswordRequest{
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
	})

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestService_ChangePassword_WrongCurrent(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.DefaultCost)
	existing := &domain.User{ID: 21, Email: "user@example.com", PasswordHash: string(hashed)}

	userRepo.On("GetByID", mock.Anything, int64(21)).Return(existing, nil)

	service := NewService(userRepo, jwtSvc)

	err := service.ChangePassword(context.Background(), 21, ChangePasswordRequest{
		CurrentPassword: "not-it",
		NewPassword:     "new-secret",
	})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestService_UpdateProfile_EmailTaken(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	existing := &domain.User{ID: 30, Email: "me@example.com", Name: "Me"}

	userRepo.On("GetByID", mock.Anything, int64(30)).Return(existing, nil)
	userRepo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	service := NewService(userRepo, jwtSvc)

	_, err := service.UpdateProfile(context.Background(), 30, UpdateProfileRequest{
		Email: "taken@example.com",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}
