package repository

import (
	"context"

	"gorm.io/gorm"

	"foundation/internal/model"
)

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Category      string
	PublishedOnly bool
	Limit         int
	OrderBy       string
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	UpdateProgress(ctx context.Context, id string, progress int) error
	// DeleteCascade removes the project and its interest rows in one
	// transaction, mirroring the original batch delete.
	DeleteCascade(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]model.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository builds a GORM-backed repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) UpdateProgress(ctx context.Context, id string, progress int) error {
	return r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Update("progress", progress).Error
}

func (r *projectRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ProjectInterest{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, "id = ?", id).Error
	})
}

func (r *projectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]model.Project, error) {
	query := r.db.WithContext(ctx)
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	orderBy := filter.OrderBy
	switch orderBy {
	case "created_at", "updated_at", "progress", "title":
	default:
		orderBy = "created_at"
	}
	query = query.Order(orderBy + " DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var projects []model.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
