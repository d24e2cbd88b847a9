package service

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"foundation/internal/auth"
	"foundation/internal/config"
	"foundation/internal/errors"
	"foundation/internal/model"
	"foundation/internal/repository"
	"foundation/internal/sanitize"
)

// ApplicationInput is the public payload for a problem-solver candidacy.
type ApplicationInput struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Country    string   `json:"country"`
	City       string   `json:"city"`
	Motivation string   `json:"motivation"`
	Experience string   `json:"experience"`
	Fields     []string `json:"fields"`
}

// ReviewApplicationInput carries the admin review update. Nil fields keep
// their current values.
type ReviewApplicationInput struct {
	Status        *string  `json:"status"`
	ReviewNotes   *string  `json:"reviewNotes"`
	Score         *int     `json:"score"`
	InterviewDate *string  `json:"interviewDate"`
	Priority      *string  `json:"priority"`
	Tags          []string `json:"tags"`
}

// ApplicationService covers the public submission form and the admin review
// pipeline.
type ApplicationService interface {
	Submit(ctx context.Context, input ApplicationInput) (*model.Application, error)
	List(ctx context.Context) ([]model.Application, error)
	Get(ctx context.Context, id string) (*model.Application, error)
	Review(ctx context.Context, actor *auth.Session, id string, input ReviewApplicationInput) (*model.Application, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.ApplicationStats, error)
}

type applicationService struct {
	applications repository.ApplicationRepository
}

// NewApplicationService creates a new application service.
func NewApplicationService(applications repository.ApplicationRepository) ApplicationService {
	return &applicationService{applications: applications}
}

func (s *applicationService) Submit(ctx context.Context, input ApplicationInput) (*model.Application, error) {
	name := sanitize.Name(input.Name)
	if len(name) < config.NameMinLength || len(name) > config.NameMaxLength {
		return nil, errors.NewValidation("name must be between 2 and 50 characters")
	}
	email := sanitize.Email(input.Email, config.EmailMaxLength)
	if email == "" {
		return nil, errors.NewValidation("invalid email address")
	}
	motivation := sanitize.Text(input.Motivation, 5000)
	if len(motivation) < 20 {
		return nil, errors.NewValidation("motivation must be at least 20 characters")
	}

	application := &model.Application{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Phone:       sanitize.Text(input.Phone, 50),
		Country:     sanitize.Text(input.Country, 100),
		City:        sanitize.Text(input.City, 100),
		Motivation:  motivation,
		Experience:  sanitize.Text(input.Experience, 5000),
		Fields:      sanitize.List(input.Fields, 10, 50),
		Status:      model.ApplicationPending,
		SubmittedAt: time.Now(),
	}
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}
	log.Info().Str("application_id", application.ID).Msg("application submitted")
	return application, nil
}

func (s *applicationService) List(ctx context.Context) ([]model.Application, error) {
	return s.applications.List(ctx)
}

func (s *applicationService) Get(ctx context.Context, id string) (*model.Application, error) {
	application, err := s.applications.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrApplicationNotFound
		}
		return nil, err
	}
	return application, nil
}

func (s *applicationService) Review(ctx context.Context, actor *auth.Session, id string, input ReviewApplicationInput) (*model.Application, error) {
	application, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		switch *input.Status {
		case model.ApplicationPending, model.ApplicationReviewing,
			model.ApplicationApproved, model.ApplicationRejected:
			application.Status = *input.Status
		default:
			return nil, errors.NewValidation("status must be pending, reviewing, approved or rejected")
		}
	}
	if input.ReviewNotes != nil {
		application.ReviewNotes = sanitize.Text(*input.ReviewNotes, 2000)
	}
	if input.Score != nil {
		score := *input.Score
		if score < 0 || score > 100 {
			return nil, errors.NewValidation("score must be between 0 and 100")
		}
		application.Score = score
	}
	if input.InterviewDate != nil {
		application.InterviewDate = ""
		if *input.InterviewDate != "" {
			parsed, ok := sanitize.Date(*input.InterviewDate)
			if !ok {
				return nil, errors.NewValidation("invalid interview date")
			}
			application.InterviewDate = parsed.Format("2006-01-02")
		}
	}
	if input.Priority != nil {
		switch *input.Priority {
		case "", model.UrgencyLow, model.UrgencyMedium, model.UrgencyHigh:
			application.Priority = *input.Priority
		default:
			return nil, errors.NewValidation("priority must be low, medium or high")
		}
	}
	if input.Tags != nil {
		application.Tags = sanitize.List(input.Tags, 10, 50)
	}

	now := time.Now()
	application.ReviewedBy = actor.Name
	application.ReviewedAt = &now
	if err := s.applications.Update(ctx, application); err != nil {
		return nil, err
	}
	log.Info().Str("application_id", application.ID).Str("status", application.Status).
		Str("actor_id", actor.UserID).Msg("application reviewed")
	return application, nil
}

func (s *applicationService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.applications.Delete(ctx, id)
}

func (s *applicationService) Stats(ctx context.Context) (*model.ApplicationStats, error) {
	applications, err := s.applications.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.ApplicationStats{Total: len(applications)}
	for _, a := range applications {
		switch a.Status {
		case model.ApplicationPending:
			stats.Pending++
		case model.ApplicationReviewing:
			stats.Reviewing++
		case model.ApplicationApproved:
			stats.Approved++
		case model.ApplicationRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}
