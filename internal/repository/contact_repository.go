package repository

import (
	"context"

	"gorm.io/gorm"

	"foundation/internal/model"
)

// ContactRepository defines persistence operations for contact messages.
type ContactRepository interface {
	Create(ctx context.Context, message *model.ContactMessage) error
	Update(ctx context.Context, message *model.ContactMessage) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.ContactMessage, error)
	List(ctx context.Context) ([]model.ContactMessage, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository builds a GORM-backed repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, message *model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *contactRepository) Update(ctx context.Context, message *model.ContactMessage) error {
	return r.db.WithContext(ctx).Save(message).Error
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.ContactMessage{}, "id = ?", id).Error
}

func (r *contactRepository) FindByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	var message model.ContactMessage
	if err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *contactRepository) List(ctx context.Context) ([]model.ContactMessage, error) {
	var messages []model.ContactMessage
	if err := r.db.WithContext(ctx).Order("submitted_at DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
