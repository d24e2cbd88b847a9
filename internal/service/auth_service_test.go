package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foundation/internal/auth"
	"foundation/internal/errors"
	"foundation/internal/model"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func activeUser(t *testing.T, password string) *model.User {
	return &model.User{
		ID:           "user-1",
		Name:         "Jordan Rivera",
		Email:        "jordan@example.org",
		PasswordHash: hashPassword(t, password),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*testing.T, *MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "jordan@example.org",
			password: "password123",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jordan@example.org").Return(activeUser(t, "password123"), nil)
				m.On("TouchLastLogin", mock.Anything, "user-1").Return(nil)
			},
		},
		{
			name:     "email is normalized before lookup",
			email:    "  Jordan@Example.org ",
			password: "password123",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jordan@example.org").Return(activeUser(t, "password123"), nil)
				m.On("TouchLastLogin", mock.Anything, "user-1").Return(nil)
			},
		},
		{
			name:     "unknown email gets the generic message",
			email:    "nobody@example.org",
			password: "password123",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.org").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password gets the generic message",
			email:    "jordan@example.org",
			password: "not-the-password",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jordan@example.org").Return(activeUser(t, "password123"), nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "inactive account is told so",
			email:    "jordan@example.org",
			password: "password123",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				user := activeUser(t, "password123")
				user.IsActive = false
				m.On("FindByEmail", mock.Anything, "jordan@example.org").Return(user, nil)
			},
			expectedError: errors.ErrAccountInactive,
		},
		{
			name:          "malformed email fails without a lookup",
			email:         "not-an-email",
			password:      "password123",
			setupMock:     func(t *testing.T, m *MockUserRepository) {},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:          "empty password fails without a lookup",
			email:         "jordan@example.org",
			password:      "",
			setupMock:     func(t *testing.T, m *MockUserRepository) {},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(t, repo)
			svc := NewAuthService(repo, auth.NewLoginLimiter(3, 2*time.Minute))

			user, err := svc.Login(context.Background(), tt.email, tt.password, "203.0.113.7")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "user-1", user.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_BlocksAfterThreeFailures(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "jordan@example.org").Return(nil, gorm.ErrRecordNotFound).Times(3)
	svc := NewAuthService(repo, auth.NewLoginLimiter(3, 2*time.Minute))

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), "jordan@example.org", "guess", "203.0.113.7")
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	}

	// The fourth attempt is rejected before any credential work: the mock
	// only permits three lookups.
	_, err := svc.Login(context.Background(), "jordan@example.org", "guess", "203.0.113.7")
	var limited *errors.RateLimitedError
	assert.ErrorAs(t, err, &limited)
	assert.Contains(t, limited.Msg, "Too many login attempts")
	repo.AssertExpectations(t)
}

func TestAuthService_Login_InactiveAccountConsumesAttempts(t *testing.T) {
	repo := new(MockUserRepository)
	inactive := activeUser(t, "password123")
	inactive.IsActive = false
	repo.On("FindByEmail", mock.Anything, "jordan@example.org").Return(inactive, nil).Times(3)
	svc := NewAuthService(repo, auth.NewLoginLimiter(3, 2*time.Minute))

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), "jordan@example.org", "password123", "203.0.113.7")
		assert.ErrorIs(t, err, errors.ErrAccountInactive)
	}

	_, err := svc.Login(context.Background(), "jordan@example.org", "password123", "203.0.113.7")
	var limited *errors.RateLimitedError
	assert.ErrorAs(t, err, &limited)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_SuccessClearsFailures(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "jordan@example.org").Return(activeUser(t, "password123"), nil)
	repo.On("TouchLastLogin", mock.Anything, "user-1").Return(nil)
	limiter := auth.NewLoginLimiter(3, 2*time.Minute)
	svc := NewAuthService(repo, limiter)

	limiter.RecordFailure("203.0.113.7")
	limiter.RecordFailure("203.0.113.7")

	_, err := svc.Login(context.Background(), "jordan@example.org", "password123", "203.0.113.7")
	assert.NoError(t, err)

	status := limiter.Check("203.0.113.7")
	assert.Zero(t, status.Attempts)
	assert.False(t, status.Blocked)
}

func TestAuthService_Login_AddressesAreIndependent(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "jordan@example.org").Return(nil, gorm.ErrRecordNotFound)
	repo.On("TouchLastLogin", mock.Anything, mock.Anything).Return(nil)
	svc := NewAuthService(repo, auth.NewLoginLimiter(3, 2*time.Minute))

	for i := 0; i < 3; i++ {
		_, _ = svc.Login(context.Background(), "jordan@example.org", "guess", "203.0.113.7")
	}

	// A different address is unaffected by the block.
	_, err := svc.Login(context.Background(), "jordan@example.org", "guess", "198.51.100.4")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}
