package service

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foundation/internal/auth"
	"foundation/internal/config"
	"foundation/internal/errors"
	"foundation/internal/model"
	"foundation/internal/repository"
	"foundation/internal/sanitize"
)

// CreateUserInput is the admin-panel payload for a new account.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserInput carries partial updates from the admin panel. Nil fields
// are left untouched.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// UpdateProfileInput is the self-service payload. Every field is optional
// and independently sanitized.
type UpdateProfileInput struct {
	Name           *string  `json:"name"`
	Bio            *string  `json:"bio"`
	Location       *string  `json:"location"`
	LinkedInURL    *string  `json:"linkedinUrl"`
	TwitterURL     *string  `json:"twitterUrl"`
	InstagramURL   *string  `json:"instagramUrl"`
	Fields         []string `json:"fields"`
	OpenToProjects *bool    `json:"openToProjects"`
}

// UserService covers admin user management and profile self-service. Every
// admin mutation is gated by the role policy before any repository call.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, actor *auth.Session, input CreateUserInput) (*model.User, error)
	Update(ctx context.Context, actor *auth.Session, id string, input UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, actor *auth.Session, id string) error
	Roles() map[model.Role]model.RoleInfo

	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*model.User, error)
}

type userService struct {
	users repository.UserRepository

	// Sliding window over profile updates per user.
	mu      sync.Mutex
	updates map[string][]time.Time
	now     func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{
		users:   users,
		updates: make(map[string][]time.Time),
		now:     time.Now,
	}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, actor *auth.Session, input CreateUserInput) (*model.User, error) {
	role := model.ParseRole(input.Role)
	if !role.Valid() {
		return nil, errors.NewValidation("invalid role, use: user, admin or superuser")
	}
	if decision := auth.CanCreateRole(actor.Role, role); !decision.Allowed {
		log.Warn().Str("actor_id", actor.UserID).Str("target_role", string(role)).
			Str("reason", decision.Reason).Msg("user creation denied")
		return nil, errors.NewPermission(decision.Reason)
	}

	name := sanitize.Name(input.Name)
	if len(name) < config.NameMinLength || len(name) > config.NameMaxLength {
		return nil, errors.NewValidation("name must be between 2 and 50 characters")
	}
	email := sanitize.Email(input.Email, config.EmailMaxLength)
	if email == "" {
		return nil, errors.NewValidation("invalid email address")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.ErrEmailTaken
	} else if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("actor_id", actor.UserID).Str("user_id", user.ID).
		Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

func (s *userService) Update(ctx context.Context, actor *auth.Session, id string, input UpdateUserInput) (*model.User, error) {
	decision := auth.CanManageUser(ctx, id, actor.Role, actor.UserID, s.lookup)
	if !decision.Allowed {
		log.Warn().Str("actor_id", actor.UserID).Str("target_id", id).
			Str("reason", decision.Reason).Msg("user update denied")
		return nil, errors.NewPermission(decision.Reason)
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := sanitize.Name(*input.Name)
		if len(name) < config.NameMinLength || len(name) > config.NameMaxLength {
			return nil, errors.NewValidation("name must be between 2 and 50 characters")
		}
		user.Name = name
	}
	if input.Email != nil {
		email := sanitize.Email(*input.Email, config.EmailMaxLength)
		if email == "" {
			return nil, errors.NewValidation("invalid email address")
		}
		if email != user.Email {
			if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
				return nil, errors.ErrEmailTaken
			} else if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}
	if input.Password != nil && *input.Password != "" {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), config.BcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if input.Role != nil {
		role := model.ParseRole(*input.Role)
		if !role.Valid() {
			return nil, errors.NewValidation("invalid role, use: user, admin or superuser")
		}
		// Assigning a role is subject to the same policy as creating it.
		if decision := auth.CanCreateRole(actor.Role, role); !decision.Allowed {
			return nil, errors.NewPermission(decision.Reason)
		}
		user.Role = role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	log.Info().Str("actor_id", actor.UserID).Str("user_id", user.ID).Msg("user updated")
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor *auth.Session, id string) error {
	decision := auth.CanManageUser(ctx, id, actor.Role, actor.UserID, s.lookup)
	if !decision.Allowed {
		log.Warn().Str("actor_id", actor.UserID).Str("target_id", id).
			Str("reason", decision.Reason).Msg("user deletion denied")
		return errors.NewPermission(decision.Reason)
	}
	if id == actor.UserID {
		return errors.NewPermission("you cannot delete your own account")
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("actor_id", actor.UserID).Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *userService) Roles() map[model.Role]model.RoleInfo {
	return model.RoleCatalog()
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.Get(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*model.User, error) {
	if !s.allowProfileUpdate(userID) {
		return nil, errors.NewRateLimited("Too many profile updates. Please wait a few minutes and try again.")
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := sanitize.Name(*input.Name)
		if len(name) < config.NameMinLength || len(name) > config.NameMaxLength {
			return nil, errors.NewValidation("name must be between 2 and 50 characters")
		}
		user.Name = name
	}
	if input.Bio != nil {
		user.Profile.Bio = sanitize.Text(*input.Bio, 500)
	}
	if input.Location != nil {
		user.Profile.Location = sanitize.Text(*input.Location, 100)
	}
	if input.LinkedInURL != nil {
		user.Profile.LinkedInURL = sanitize.LinkedInURL(*input.LinkedInURL)
	}
	if input.TwitterURL != nil {
		user.Profile.TwitterURL = sanitize.TwitterURL(*input.TwitterURL)
	}
	if input.InstagramURL != nil {
		user.Profile.InstagramURL = sanitize.InstagramURL(*input.InstagramURL)
	}
	if input.Fields != nil {
		user.Profile.Fields = sanitize.List(input.Fields, 10, 50)
	}
	if input.OpenToProjects != nil {
		user.Profile.OpenToProjects = *input.OpenToProjects
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// allowProfileUpdate enforces the sliding window: at most ProfileUpdateLimit
// updates per user within ProfileUpdateWindow.
func (s *userService) allowProfileUpdate(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-config.ProfileUpdateWindow)
	recent := s.updates[userID][:0]
	for _, t := range s.updates[userID] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) >= config.ProfileUpdateLimit {
		s.updates[userID] = recent
		return false
	}
	s.updates[userID] = append(recent, now)
	return true
}

// lookup adapts the repository to the role policy's UserLookup contract:
// a missing record is (nil, nil), not an error.
func (s *userService) lookup(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func validatePassword(password string) error {
	if len(password) < config.PasswordMinLength {
		return errors.NewValidation("password must be at least 6 characters")
	}
	if len(password) > config.PasswordMaxLength {
		return errors.NewValidation("password is too long")
	}
	if strings.TrimSpace(password) == "" {
		return errors.NewValidation("password cannot be blank")
	}
	return nil
}
