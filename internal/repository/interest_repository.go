package repository

import (
	"context"

	"gorm.io/gorm"

	"foundation/internal/model"
)

// InterestRepository defines persistence operations for project interests.
type InterestRepository interface {
	Create(ctx context.Context, interest *model.ProjectInterest) error
	Update(ctx context.Context, interest *model.ProjectInterest) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.ProjectInterest, error)
	FindByProjectAndUser(ctx context.Context, projectID, userID string) (*model.ProjectInterest, error)
	List(ctx context.Context) ([]model.ProjectInterest, error)
}

type interestRepository struct {
	db *gorm.DB
}

// NewInterestRepository builds a GORM-backed repository.
func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) Create(ctx context.Context, interest *model.ProjectInterest) error {
	return r.db.WithContext(ctx).Create(interest).Error
}

func (r *interestRepository) Update(ctx context.Context, interest *model.ProjectInterest) error {
	return r.db.WithContext(ctx).Save(interest).Error
}

func (r *interestRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.ProjectInterest{}, "id = ?", id).Error
}

func (r *interestRepository) FindByID(ctx context.Context, id string) (*model.ProjectInterest, error) {
	var interest model.ProjectInterest
	if err := r.db.WithContext(ctx).First(&interest, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) FindByProjectAndUser(ctx context.Context, projectID, userID string) (*model.ProjectInterest, error) {
	var interest model.ProjectInterest
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&interest).Error
	if err != nil {
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) List(ctx context.Context) ([]model.ProjectInterest, error) {
	var interests []model.ProjectInterest
	if err := r.db.WithContext(ctx).Order("submitted_at DESC").Find(&interests).Error; err != nil {
		return nil, err
	}
	return interests, nil
}
