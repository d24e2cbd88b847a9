package repository

import (
	"context"

	"gorm.io/gorm"

	"foundation/internal/model"
)

// ProblemFilter narrows problem listings.
type ProblemFilter struct {
	Status         string
	SubmittedBy    string
	KnowledgeField string
}

// ProblemRepository defines persistence operations for community problems.
type ProblemRepository interface {
	Create(ctx context.Context, problem *model.Problem) error
	Update(ctx context.Context, problem *model.Problem) error
	// DeleteCascade removes the problem and its solution proposals in one
	// transaction.
	DeleteCascade(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Problem, error)
	List(ctx context.Context, filter ProblemFilter) ([]model.Problem, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type problemRepository struct {
	db *gorm.DB
}

// NewProblemRepository builds a GORM-backed repository.
func NewProblemRepository(db *gorm.DB) ProblemRepository {
	return &problemRepository{db: db}
}

func (r *problemRepository) Create(ctx context.Context, problem *model.Problem) error {
	return r.db.WithContext(ctx).Create(problem).Error
}

func (r *problemRepository) Update(ctx context.Context, problem *model.Problem) error {
	return r.db.WithContext(ctx).Save(problem).Error
}

func (r *problemRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.SolutionProposal{}, "problem_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Problem{}, "id = ?", id).Error
	})
}

func (r *problemRepository) FindByID(ctx context.Context, id string) (*model.Problem, error) {
	var problem model.Problem
	if err := r.db.WithContext(ctx).First(&problem, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &problem, nil
}

func (r *problemRepository) List(ctx context.Context, filter ProblemFilter) ([]model.Problem, error) {
	query := r.db.WithContext(ctx).Order("submitted_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SubmittedBy != "" {
		query = query.Where("submitted_by = ?", filter.SubmittedBy)
	}
	if filter.KnowledgeField != "" {
		query = query.Where("LOWER(knowledge_field) LIKE ?", "%"+filter.KnowledgeField+"%")
	}

	var problems []model.Problem
	if err := query.Find(&problems).Error; err != nil {
		return nil, err
	}
	return problems, nil
}

func (r *problemRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	type row struct {
		Status string
		Count  int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Problem{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
