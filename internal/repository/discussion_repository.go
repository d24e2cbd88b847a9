package repository

import (
	"context"

	"gorm.io/gorm"

	"foundation/internal/model"
)

// DiscussionRepository defines persistence operations for forum threads.
type DiscussionRepository interface {
	Create(ctx context.Context, discussion *model.Discussion) error
	CreateReply(ctx context.Context, reply *model.DiscussionReply) error
	// DeleteCascade removes the thread and its replies in one transaction.
	DeleteCascade(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Discussion, error)
	ListReplies(ctx context.Context, discussionID string) ([]model.DiscussionReply, error)
	List(ctx context.Context) ([]model.Discussion, error)
	CountReplies(ctx context.Context, discussionID string) (int64, error)
}

type discussionRepository struct {
	db *gorm.DB
}

// NewDiscussionRepository builds a GORM-backed repository.
func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepository{db: db}
}

func (r *discussionRepository) Create(ctx context.Context, discussion *model.Discussion) error {
	return r.db.WithContext(ctx).Create(discussion).Error
}

func (r *discussionRepository) CreateReply(ctx context.Context, reply *model.DiscussionReply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *discussionRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.DiscussionReply{}, "discussion_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Discussion{}, "id = ?", id).Error
	})
}

func (r *discussionRepository) FindByID(ctx context.Context, id string) (*model.Discussion, error) {
	var discussion model.Discussion
	if err := r.db.WithContext(ctx).First(&discussion, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &discussion, nil
}

func (r *discussionRepository) ListReplies(ctx context.Context, discussionID string) ([]model.DiscussionReply, error) {
	var replies []model.DiscussionReply
	err := r.db.WithContext(ctx).
		Where("discussion_id = ?", discussionID).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

func (r *discussionRepository) List(ctx context.Context) ([]model.Discussion, error) {
	var discussions []model.Discussion
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&discussions).Error; err != nil {
		return nil, err
	}
	return discussions, nil
}

func (r *discussionRepository) CountReplies(ctx context.Context, discussionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DiscussionReply{}).
		Where("discussion_id = ?", discussionID).
		Count(&count).Error
	return count, err
}
