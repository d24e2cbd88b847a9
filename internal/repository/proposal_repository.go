package repository

import (
	"context"

	"gorm.io/gorm"

	"foundation/internal/model"
)

// ProposalRepository defines persistence operations for solution proposals.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *model.SolutionProposal) error
	Update(ctx context.Context, proposal *model.SolutionProposal) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.SolutionProposal, error)
	List(ctx context.Context) ([]model.SolutionProposal, error)
	ListByProblem(ctx context.Context, problemID string) ([]model.SolutionProposal, error)
}

type proposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository builds a GORM-backed repository.
func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *model.SolutionProposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *proposalRepository) Update(ctx context.Context, proposal *model.SolutionProposal) error {
	return r.db.WithContext(ctx).Save(proposal).Error
}

func (r *proposalRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.SolutionProposal{}, "id = ?", id).Error
}

func (r *proposalRepository) FindByID(ctx context.Context, id string) (*model.SolutionProposal, error) {
	var proposal model.SolutionProposal
	if err := r.db.WithContext(ctx).First(&proposal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *proposalRepository) List(ctx context.Context) ([]model.SolutionProposal, error) {
	var proposals []model.SolutionProposal
	if err := r.db.WithContext(ctx).Order("submitted_at DESC").Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}

func (r *proposalRepository) ListByProblem(ctx context.Context, problemID string) ([]model.SolutionProposal, error) {
	var proposals []model.SolutionProposal
	err := r.db.WithContext(ctx).
		Where("problem_id = ?", problemID).
		Order("submitted_at DESC").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}
	return proposals, nil
}
