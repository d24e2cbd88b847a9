package service

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"foundation/internal/config"
	"foundation/internal/errors"
	"foundation/internal/model"
	"foundation/internal/repository"
	"foundation/internal/sanitize"
)

// ContactInput is the public contact-form payload.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactService covers the public contact form and the admin inbox.
type ContactService interface {
	Submit(ctx context.Context, input ContactInput) (*model.ContactMessage, error)
	List(ctx context.Context) ([]model.ContactMessage, error)
	Get(ctx context.Context, id string) (*model.ContactMessage, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

type contactService struct {
	contacts repository.ContactRepository
}

// NewContactService creates a new contact service.
func NewContactService(contacts repository.ContactRepository) ContactService {
	return &contactService{contacts: contacts}
}

func (s *contactService) Submit(ctx context.Context, input ContactInput) (*model.ContactMessage, error) {
	name := sanitize.Name(input.Name)
	if len(name) < config.NameMinLength || len(name) > config.NameMaxLength {
		return nil, errors.NewValidation("name must be between 2 and 50 characters")
	}
	email := sanitize.Email(input.Email, config.EmailMaxLength)
	if email == "" {
		return nil, errors.NewValidation("invalid email address")
	}
	message := sanitize.Text(input.Message, 5000)
	if len(message) < 10 {
		return nil, errors.NewValidation("message must be at least 10 characters")
	}

	contact := &model.ContactMessage{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Subject:     sanitize.Text(input.Subject, 255),
		Message:     message,
		Status:      model.ContactNew,
		SubmittedAt: time.Now(),
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	log.Info().Str("contact_id", contact.ID).Msg("contact message received")
	return contact, nil
}

func (s *contactService) List(ctx context.Context) ([]model.ContactMessage, error) {
	return s.contacts.List(ctx)
}

func (s *contactService) Get(ctx context.Context, id string) (*model.ContactMessage, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (s *contactService) UpdateStatus(ctx context.Context, id, status string) (*model.ContactMessage, error) {
	switch status {
	case model.ContactNew, model.ContactRead, model.ContactReplied, model.ContactArchived:
	default:
		return nil, errors.NewValidation("status must be new, read, replied or archived")
	}

	contact, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	contact.Status = status
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, id)
}
