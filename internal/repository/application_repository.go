package repository

import (
	"context"

	"gorm.io/gorm"

	"foundation/internal/model"
)

// ApplicationRepository defines persistence operations for candidacies.
type ApplicationRepository interface {
	Create(ctx context.Context, application *model.Application) error
	Update(ctx context.Context, application *model.Application) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Application, error)
	List(ctx context.Context) ([]model.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository builds a GORM-backed repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) Update(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Save(application).Error
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Application{}, "id = ?", id).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	var application model.Application
	if err := r.db.WithContext(ctx).First(&application, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) List(ctx context.Context) ([]model.Application, error) {
	var applications []model.Application
	if err := r.db.WithContext(ctx).Order("submitted_at DESC").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}
