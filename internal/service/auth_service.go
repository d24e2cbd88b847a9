package service

import (
	"context"
	stderrors "errors"

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

// AuthService authenticates credentials. Session issuance stays with the
// handler; this service only decides whether a login may proceed.
type AuthService interface {
	// Login verifies credentials for the client address. Every failure path
	// returns ErrInvalidCredentials except an inactive account, which gets
	// its own message, and a blocked address, which is rejected before any
	// credential work happens.
	Login(ctx context.Context, email, password, address string) (*model.User, error)
}

type authService struct {
	users   repository.UserRepository
	limiter *auth.LoginLimiter
}

// NewAuthService creates a new auth service.
func NewAuthService(users repository.UserRepository, limiter *auth.LoginLimiter) AuthService {
	return &authService{users: users, limiter: limiter}
}

func (s *authService) Login(ctx context.Context, email, password, address string) (*model.User, error) {
	if status := s.limiter.Check(address); status.Blocked {
		log.Warn().Str("address", address).Dur("retry_after", status.RetryAfter).
			Msg("login attempt while blocked")
		return nil, errors.NewRateLimited(auth.RetryMessage(status.RetryAfter))
	}

	// Malformed input fails without consuming an attempt: it carries no
	// signal about any account.
	cleanEmail := sanitize.Email(email, config.EmailMaxLength)
	if cleanEmail == "" || password == "" {
		return nil, errors.ErrInvalidCredentials
	}
	if len(password) > config.PasswordMaxLength {
		return nil, errors.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, cleanEmail)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			s.limiter.RecordFailure(address)
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		s.limiter.RecordFailure(address)
		log.Warn().Str("address", address).Str("user_id", user.ID).
			Msg("login attempt on inactive account")
		return nil, errors.ErrAccountInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.limiter.RecordFailure(address)
		return nil, errors.ErrInvalidCredentials
	}

	s.limiter.RecordSuccess(address)
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		// Non-fatal: the login itself succeeded.
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return user, nil
}
