package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"foundation/internal/auth"
	"foundation/internal/errors"
	"foundation/internal/model"
)

func sessionFor(role model.Role) *auth.Session {
	return &auth.Session{
		ID:            "session-1",
		Authenticated: true,
		UserID:        "actor-1",
		Email:         "actor@example.org",
		Name:          "Acting User",
		Role:          role,
	}
}

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name        string
		actorRole   model.Role
		input       CreateUserInput
		setupMock   func(*MockUserRepository)
		wantErr     string
		wantCreated bool
	}{
		{
			name:      "superuser creates an admin",
			actorRole: model.RoleSuperuser,
			input:     CreateUserInput{Name: "New Admin", Email: "admin@example.org", Password: "secret123", Role: "admin"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "admin@example.org").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			wantCreated: true,
		},
		{
			name:      "admin creates a regular user",
			actorRole: model.RoleAdmin,
			input:     CreateUserInput{Name: "New User", Email: "user@example.org", Password: "secret123", Role: "user"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "user@example.org").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			wantCreated: true,
		},
		{
			name:      "admin cannot create a superuser",
			actorRole: model.RoleAdmin,
			input:     CreateUserInput{Name: "Escalation", Email: "root@example.org", Password: "secret123", Role: "superuser"},
			setupMock: func(m *MockUserRepository) {},
			wantErr:   "admins cannot create superusers",
		},
		{
			name:      "regular user cannot create accounts",
			actorRole: model.RoleUser,
			input:     CreateUserInput{Name: "Someone", Email: "someone@example.org", Password: "secret123", Role: "user"},
			setupMock: func(m *MockUserRepository) {},
			wantErr:   "regular users cannot create accounts",
		},
		{
			name:      "duplicate email is rejected",
			actorRole: model.RoleSuperuser,
			input:     CreateUserInput{Name: "Dup", Email: "taken@example.org", Password: "secret123", Role: "user"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.org").Return(&model.User{ID: "other"}, nil)
			},
			wantErr: "a user with this email already exists",
		},
		{
			name:      "short password is rejected",
			actorRole: model.RoleSuperuser,
			input:     CreateUserInput{Name: "Shorty", Email: "shorty@example.org", Password: "abc", Role: "user"},
			setupMock: func(m *MockUserRepository) {},
			wantErr:   "password must be at least 6 characters",
		},
		{
			name:      "unknown role is rejected",
			actorRole: model.RoleSuperuser,
			input:     CreateUserInput{Name: "Odd", Email: "odd@example.org", Password: "secret123", Role: "owner"},
			setupMock: func(m *MockUserRepository) {},
			wantErr:   "invalid role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			svc := NewUserService(repo)

			user, err := svc.Create(context.Background(), sessionFor(tt.actorRole), tt.input)

			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, user.ID)
				assert.True(t, user.IsActive)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	t.Run("admin cannot delete another admin and no delete is attempted", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, "target-admin").
			Return(&model.User{ID: "target-admin", Role: model.RoleAdmin, IsActive: true}, nil)
		svc := NewUserService(repo)

		err := svc.Delete(context.Background(), sessionFor(model.RoleAdmin), "target-admin")

		var pe *errors.PermissionError
		assert.ErrorAs(t, err, &pe)
		assert.Equal(t, "admins cannot manage other admins or superusers", pe.Reason)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("admin deletes a regular user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, "target-user").
			Return(&model.User{ID: "target-user", Role: model.RoleUser, IsActive: true}, nil)
		repo.On("Delete", mock.Anything, "target-user").Return(nil)
		svc := NewUserService(repo)

		err := svc.Delete(context.Background(), sessionFor(model.RoleAdmin), "target-user")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("superuser cannot delete their own account", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		err := svc.Delete(context.Background(), sessionFor(model.RoleSuperuser), "actor-1")

		var pe *errors.PermissionError
		assert.ErrorAs(t, err, &pe)
		assert.Equal(t, "you cannot delete your own account", pe.Reason)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing target is a denial for admins", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
		svc := NewUserService(repo)

		err := svc.Delete(context.Background(), sessionFor(model.RoleAdmin), "ghost")

		var pe *errors.PermissionError
		assert.ErrorAs(t, err, &pe)
		assert.Equal(t, "target user not found", pe.Reason)
	})
}

func TestUserService_Update(t *testing.T) {
	t.Run("admin must use the profile page for their own account", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		name := "Renamed"
		_, err := svc.Update(context.Background(), sessionFor(model.RoleAdmin), "actor-1", UpdateUserInput{Name: &name})

		var pe *errors.PermissionError
		assert.ErrorAs(t, err, &pe)
		assert.Equal(t, "use the profile page to edit your own account", pe.Reason)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("admin cannot promote a user to superuser", func(t *testing.T) {
		repo := new(MockUserRepository)
		target := &model.User{ID: "target-user", Name: "Target", Email: "t@example.org", Role: model.RoleUser, IsActive: true}
		repo.On("FindByID", mock.Anything, "target-user").Return(target, nil)
		svc := NewUserService(repo)

		role := "superuser"
		_, err := svc.Update(context.Background(), sessionFor(model.RoleAdmin), "target-user", UpdateUserInput{Role: &role})

		var pe *errors.PermissionError
		assert.ErrorAs(t, err, &pe)
		assert.Equal(t, "admins cannot create superusers", pe.Reason)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("superuser deactivates an admin", func(t *testing.T) {
		repo := new(MockUserRepository)
		target := &model.User{ID: "target-admin", Name: "Target", Email: "t@example.org", Role: model.RoleAdmin, IsActive: true}
		repo.On("FindByID", mock.Anything, "target-admin").Return(target, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		svc := NewUserService(repo)

		inactive := false
		updated, err := svc.Update(context.Background(), sessionFor(model.RoleSuperuser), "target-admin", UpdateUserInput{IsActive: &inactive})

		assert.NoError(t, err)
		assert.False(t, updated.IsActive)
		repo.AssertExpectations(t)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("sanitizes urls and fields", func(t *testing.T) {
		repo := new(MockUserRepository)
		user := &model.User{ID: "actor-1", Name: "Acting User", Email: "actor@example.org", Role: model.RoleUser, IsActive: true}
		repo.On("FindByID", mock.Anything, "actor-1").Return(user, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		svc := NewUserService(repo)

		bio := "<script>alert(1)</script>Community organizer"
		linkedin := "https://linkedin.com/in/acting"
		bogus := "https://evil.example.com/acting"
		updated, err := svc.UpdateProfile(context.Background(), "actor-1", UpdateProfileInput{
			Bio:          &bio,
			LinkedInURL:  &linkedin,
			TwitterURL:   &bogus,
			Fields:       []string{"water", "", "education"},
		})

		assert.NoError(t, err)
		assert.NotContains(t, updated.Profile.Bio, "<script>")
		assert.Equal(t, linkedin, updated.Profile.LinkedInURL)
		assert.Empty(t, updated.Profile.TwitterURL)
		assert.Equal(t, []string{"water", "education"}, updated.Profile.Fields)
	})

	t.Run("rate limits repeated updates", func(t *testing.T) {
		repo := new(MockUserRepository)
		user := &model.User{ID: "actor-1", Name: "Acting User", Email: "actor@example.org", Role: model.RoleUser, IsActive: true}
		repo.On("FindByID", mock.Anything, "actor-1").Return(user, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		svc := NewUserService(repo)

		bio := "short bio"
		for i := 0; i < 5; i++ {
			_, err := svc.UpdateProfile(context.Background(), "actor-1", UpdateProfileInput{Bio: &bio})
			assert.NoError(t, err)
		}

		_, err := svc.UpdateProfile(context.Background(), "actor-1", UpdateProfileInput{Bio: &bio})
		var limited *errors.RateLimitedError
		assert.ErrorAs(t, err, &limited)
	})
}
