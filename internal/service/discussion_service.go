package service

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"foundation/internal/auth"
	"foundation/internal/errors"
	"foundation/internal/model"
	"foundation/internal/repository"
	"foundation/internal/sanitize"
)

// DiscussionInput is the community payload for opening a forum thread.
type DiscussionInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReplyInput is the community payload for answering inside a thread.
type ReplyInput struct {
	Content string `json:"content"`
}

// DiscussionDetail bundles a thread with its replies.
type DiscussionDetail struct {
	Discussion model.Discussion        `json:"discussion"`
	Replies    []model.DiscussionReply `json:"replies"`
}

// DiscussionService covers the community forum. Deleting a thread is
// allowed for its author and for admin-area roles.
type DiscussionService interface {
	Create(ctx context.Context, actor *auth.Session, input DiscussionInput) (*model.Discussion, error)
	List(ctx context.Context) ([]model.Discussion, error)
	Get(ctx context.Context, id string) (*DiscussionDetail, error)
	Reply(ctx context.Context, actor *auth.Session, discussionID string, input ReplyInput) (*model.DiscussionReply, error)
	Delete(ctx context.Context, actor *auth.Session, id string) error
}

type discussionService struct {
	discussions repository.DiscussionRepository
}

// NewDiscussionService creates a new discussion service.
func NewDiscussionService(discussions repository.DiscussionRepository) DiscussionService {
	return &discussionService{discussions: discussions}
}

func (s *discussionService) Create(ctx context.Context, actor *auth.Session, input DiscussionInput) (*model.Discussion, error) {
	title := sanitize.Text(input.Title, 255)
	if len(title) < 5 {
		return nil, errors.NewValidation("title must be at least 5 characters")
	}
	content := sanitize.Text(input.Content, 10000)
	if len(content) < 10 {
		return nil, errors.NewValidation("content must be at least 10 characters")
	}

	discussion := &model.Discussion{
		ID:         uuid.New().String(),
		Title:      title,
		Content:    content,
		AuthorID:   actor.UserID,
		AuthorName: actor.Name,
	}
	if err := s.discussions.Create(ctx, discussion); err != nil {
		return nil, err
	}
	log.Info().Str("discussion_id", discussion.ID).Str("user_id", actor.UserID).Msg("discussion opened")
	return discussion, nil
}

func (s *discussionService) List(ctx context.Context) ([]model.Discussion, error) {
	discussions, err := s.discussions.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range discussions {
		count, err := s.discussions.CountReplies(ctx, discussions[i].ID)
		if err != nil {
			return nil, err
		}
		discussions[i].ReplyCount = int(count)
	}
	return discussions, nil
}

func (s *discussionService) Get(ctx context.Context, id string) (*DiscussionDetail, error) {
	discussion, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	replies, err := s.discussions.ListReplies(ctx, id)
	if err != nil {
		return nil, err
	}
	discussion.ReplyCount = len(replies)
	return &DiscussionDetail{Discussion: *discussion, Replies: replies}, nil
}

func (s *discussionService) Reply(ctx context.Context, actor *auth.Session, discussionID string, input ReplyInput) (*model.DiscussionReply, error) {
	if _, err := s.find(ctx, discussionID); err != nil {
		return nil, err
	}
	content := sanitize.Text(input.Content, 10000)
	if len(content) < 2 {
		return nil, errors.NewValidation("reply cannot be empty")
	}

	reply := &model.DiscussionReply{
		ID:           uuid.New().String(),
		DiscussionID: discussionID,
		Content:      content,
		AuthorID:     actor.UserID,
		AuthorName:   actor.Name,
	}
	if err := s.discussions.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *discussionService) Delete(ctx context.Context, actor *auth.Session, id string) error {
	discussion, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if discussion.AuthorID != actor.UserID && !auth.CanAccessAdminArea(actor.Role) {
		return errors.ErrNotAuthor
	}
	if err := s.discussions.DeleteCascade(ctx, id); err != nil {
		return err
	}
	log.Info().Str("discussion_id", id).Str("actor_id", actor.UserID).Msg("discussion deleted with its replies")
	return nil
}

func (s *discussionService) find(ctx context.Context, id string) (*model.Discussion, error) {
	discussion, err := s.discussions.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrDiscussionNotFound
		}
		return nil, err
	}
	return discussion, nil
}
