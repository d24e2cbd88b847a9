package service

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"foundation/internal/auth"
	"foundation/internal/errors"
	"foundation/internal/model"
	"foundation/internal/repository"
	"foundation/internal/sanitize"
)

// ProjectInput is the admin payload for creating or updating a project.
type ProjectInput struct {
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Category       string               `json:"category"`
	Status         string               `json:"status"`
	ImageURL       string               `json:"imageUrl"`
	Progress       int                  `json:"progress"`
	CompletionDate string               `json:"completionDate"`
	Metrics        model.ProjectMetrics `json:"metrics"`
	IsPublished    bool                 `json:"isPublished"`
}

// InterestInput is the community payload for volunteering on a project.
type InterestInput struct {
	ProjectID string `json:"projectId"`
	Message   string `json:"message"`
}

// ProjectService covers the public project reads, admin CRUD, and the
// community interest flow.
type ProjectService interface {
	ListPublished(ctx context.Context, category string, limit int) ([]model.Project, error)
	GetPublished(ctx context.Context, id string) (*model.Project, error)
	ListAll(ctx context.Context) ([]model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, input ProjectInput) (*model.Project, error)
	Update(ctx context.Context, id string, input ProjectInput) (*model.Project, error)
	UpdateProgress(ctx context.Context, id string, progress int) (*model.Project, error)
	Delete(ctx context.Context, id string) error

	RegisterInterest(ctx context.Context, actor *auth.Session, input InterestInput) (*model.ProjectInterest, error)
	ListInterests(ctx context.Context) ([]model.ProjectInterest, error)
	ReviewInterest(ctx context.Context, actor *auth.Session, id, status string) (*model.ProjectInterest, error)
}

type projectService struct {
	projects  repository.ProjectRepository
	interests repository.InterestRepository
	stats     *StatsService
}

// NewProjectService creates a new project service. stats may be nil in tests;
// when present its cache is invalidated after every mutation.
func NewProjectService(projects repository.ProjectRepository, interests repository.InterestRepository, stats *StatsService) ProjectService {
	return &projectService{projects: projects, interests: interests, stats: stats}
}

func (s *projectService) ListPublished(ctx context.Context, category string, limit int) ([]model.Project, error) {
	if category != "" && !model.ValidCategory(category) {
		return nil, errors.ErrInvalidCategory
	}
	return s.projects.List(ctx, repository.ProjectFilter{
		Category:      category,
		PublishedOnly: true,
		Limit:         limit,
	})
}

func (s *projectService) GetPublished(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.IsPublished {
		return nil, errors.ErrProjectNotFound
	}
	return project, nil
}

func (s *projectService) ListAll(ctx context.Context) ([]model.Project, error) {
	return s.projects.List(ctx, repository.ProjectFilter{})
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

func (s *projectService) Create(ctx context.Context, input ProjectInput) (*model.Project, error) {
	project, err := s.buildProject(&model.Project{ID: uuid.New().String()}, input)
	if err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	log.Info().Str("project_id", project.ID).Str("category", project.Category).Msg("project created")
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id string, input ProjectInput) (*model.Project, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	project, err := s.buildProject(existing, input)
	if err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	log.Info().Str("project_id", project.ID).Msg("project updated")
	return project, nil
}

func (s *projectService) UpdateProgress(ctx context.Context, id string, progress int) (*model.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Progress = clampProgress(progress)
	if err := s.projects.UpdateProgress(ctx, id, project.Progress); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.projects.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	log.Info().Str("project_id", id).Msg("project deleted with its interests")
	return nil
}

func (s *projectService) RegisterInterest(ctx context.Context, actor *auth.Session, input InterestInput) (*model.ProjectInterest, error) {
	project, err := s.GetPublished(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	// One pending interest per user per project.
	if existing, err := s.interests.FindByProjectAndUser(ctx, project.ID, actor.UserID); err == nil && existing != nil {
		return nil, errors.NewValidation("you have already expressed interest in this project")
	} else if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	interest := &model.ProjectInterest{
		ID:           uuid.New().String(),
		ProjectID:    project.ID,
		ProjectTitle: project.Title,
		UserID:       actor.UserID,
		UserName:     actor.Name,
		UserEmail:    actor.Email,
		Message:      sanitize.Text(input.Message, 1000),
		Status:       model.StatusPending,
		SubmittedAt:  time.Now(),
	}
	if err := s.interests.Create(ctx, interest); err != nil {
		return nil, err
	}
	log.Info().Str("project_id", project.ID).Str("user_id", actor.UserID).Msg("project interest registered")
	return interest, nil
}

func (s *projectService) ListInterests(ctx context.Context) ([]model.ProjectInterest, error) {
	return s.interests.List(ctx)
}

func (s *projectService) ReviewInterest(ctx context.Context, actor *auth.Session, id, status string) (*model.ProjectInterest, error) {
	if status != model.StatusApproved && status != model.StatusRejected {
		return nil, errors.NewValidation("status must be approved or rejected")
	}
	interest, err := s.interests.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrProjectNotFound
		}
		return nil, err
	}

	now := time.Now()
	interest.Status = status
	interest.ReviewedBy = actor.UserID
	interest.ReviewedAt = &now
	if err := s.interests.Update(ctx, interest); err != nil {
		return nil, err
	}
	return interest, nil
}

func (s *projectService) buildProject(project *model.Project, input ProjectInput) (*model.Project, error) {
	title := sanitize.Text(input.Title, 255)
	if title == "" {
		return nil, errors.NewValidation("title is required")
	}
	if !model.ValidCategory(input.Category) {
		return nil, errors.ErrInvalidCategory
	}

	project.Title = title
	project.Description = sanitize.HTML(input.Description, 0)
	project.Category = input.Category
	project.Status = sanitize.Text(input.Status, 50)
	if project.Status == "" {
		project.Status = "active"
	}
	project.ImageURL = sanitize.URL(input.ImageURL)
	project.Progress = clampProgress(input.Progress)
	project.CompletionDate = ""
	if input.CompletionDate != "" {
		parsed, ok := sanitize.Date(input.CompletionDate)
		if !ok {
			return nil, errors.NewValidation("invalid completion date")
		}
		project.CompletionDate = parsed.Format("2006-01-02")
	}
	project.Metrics = model.ProjectMetrics{
		LivesImpacted:      clampNonNegative(input.Metrics.LivesImpacted),
		VolunteersInvolved: clampNonNegative(input.Metrics.VolunteersInvolved),
	}
	project.IsPublished = input.IsPublished
	return project, nil
}

func (s *projectService) invalidateStats(ctx context.Context) {
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
}

func clampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
