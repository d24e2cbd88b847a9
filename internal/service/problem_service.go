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

// ProblemInput is the community payload for submitting a problem.
type ProblemInput struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Location       model.Location `json:"location"`
	KnowledgeField string         `json:"knowledgeField"`
	Urgency        string         `json:"urgency"`
}

// ModerateProblemInput carries an admin review decision. Edits to the
// problem text ride along with the decision when present.
type ModerateProblemInput struct {
	Status     string  `json:"status"`
	AdminNotes string  `json:"adminNotes"`
	Title      *string `json:"title"`
	Urgency    *string `json:"urgency"`
}

// ProposalInput is the community payload for proposing a solution.
type ProposalInput struct {
	ProblemID string `json:"problemId"`
	Summary   string `json:"summary"`
	Details   string `json:"details"`
}

// ProblemService covers community problem submission, public listing of
// approved problems, admin moderation, and the solution-proposal flow.
type ProblemService interface {
	Submit(ctx context.Context, actor *auth.Session, input ProblemInput) (*model.Problem, error)
	ListApproved(ctx context.Context, knowledgeField string) ([]model.Problem, error)
	ListMine(ctx context.Context, actor *auth.Session) ([]model.Problem, error)
	ListAll(ctx context.Context, status string) ([]model.Problem, error)
	Get(ctx context.Context, id string) (*model.Problem, error)
	Moderate(ctx context.Context, actor *auth.Session, id string, input ModerateProblemInput) (*model.Problem, error)
	Delete(ctx context.Context, id string) error
	StatusCounts(ctx context.Context) (map[string]int, error)

	SubmitProposal(ctx context.Context, actor *auth.Session, input ProposalInput) (*model.SolutionProposal, error)
	ListProposals(ctx context.Context, problemID string) ([]model.SolutionProposal, error)
	ReviewProposal(ctx context.Context, actor *auth.Session, id, status string) (*model.SolutionProposal, error)
}

type problemService struct {
	problems  repository.ProblemRepository
	proposals repository.ProposalRepository
}

// NewProblemService creates a new problem service.
func NewProblemService(problems repository.ProblemRepository, proposals repository.ProposalRepository) ProblemService {
	return &problemService{problems: problems, proposals: proposals}
}

func (s *problemService) Submit(ctx context.Context, actor *auth.Session, input ProblemInput) (*model.Problem, error) {
	title := sanitize.Text(input.Title, 255)
	if len(title) < 5 {
		return nil, errors.NewValidation("title must be at least 5 characters")
	}
	description := sanitize.Text(input.Description, 5000)
	if len(description) < 20 {
		return nil, errors.NewValidation("description must be at least 20 characters")
	}
	country := sanitize.Text(input.Location.Country, 100)
	city := sanitize.Text(input.Location.City, 100)
	if country == "" || city == "" {
		return nil, errors.NewValidation("country and city are required")
	}
	field := sanitize.Text(input.KnowledgeField, 100)
	if field == "" {
		return nil, errors.NewValidation("knowledge field is required")
	}
	urgency := input.Urgency
	switch urgency {
	case model.UrgencyLow, model.UrgencyMedium, model.UrgencyHigh:
	case "":
		urgency = model.UrgencyMedium
	default:
		return nil, errors.NewValidation("urgency must be low, medium or high")
	}

	problem := &model.Problem{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Location: model.Location{
			Country: country,
			State:   sanitize.Text(input.Location.State, 100),
			City:    city,
		},
		KnowledgeField:   field,
		Urgency:          urgency,
		Status:           model.StatusPending,
		SubmittedBy:      actor.UserID,
		SubmittedByName:  actor.Name,
		SubmittedByEmail: actor.Email,
		SubmittedAt:      time.Now(),
	}
	if err := s.problems.Create(ctx, problem); err != nil {
		return nil, err
	}
	log.Info().Str("problem_id", problem.ID).Str("user_id", actor.UserID).Msg("problem submitted")
	return problem, nil
}

func (s *problemService) ListApproved(ctx context.Context, knowledgeField string) ([]model.Problem, error) {
	return s.problems.List(ctx, repository.ProblemFilter{
		Status:         model.StatusApproved,
		KnowledgeField: sanitize.Text(knowledgeField, 100),
	})
}

func (s *problemService) ListMine(ctx context.Context, actor *auth.Session) ([]model.Problem, error) {
	return s.problems.List(ctx, repository.ProblemFilter{SubmittedBy: actor.UserID})
}

func (s *problemService) ListAll(ctx context.Context, status string) ([]model.Problem, error) {
	switch status {
	case "", model.StatusPending, model.StatusApproved, model.StatusRejected:
	default:
		return nil, errors.NewValidation("status must be pending, approved or rejected")
	}
	return s.problems.List(ctx, repository.ProblemFilter{Status: status})
}

func (s *problemService) Get(ctx context.Context, id string) (*model.Problem, error) {
	problem, err := s.problems.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrProblemNotFound
		}
		return nil, err
	}
	return problem, nil
}

func (s *problemService) Moderate(ctx context.Context, actor *auth.Session, id string, input ModerateProblemInput) (*model.Problem, error) {
	if input.Status != model.StatusApproved && input.Status != model.StatusRejected {
		return nil, errors.NewValidation("status must be approved or rejected")
	}
	problem, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := sanitize.Text(*input.Title, 255)
		if len(title) < 5 {
			return nil, errors.NewValidation("title must be at least 5 characters")
		}
		problem.Title = title
	}
	if input.Urgency != nil {
		switch *input.Urgency {
		case model.UrgencyLow, model.UrgencyMedium, model.UrgencyHigh:
			problem.Urgency = *input.Urgency
		default:
			return nil, errors.NewValidation("urgency must be low, medium or high")
		}
	}

	now := time.Now()
	problem.Status = input.Status
	problem.AdminNotes = sanitize.Text(input.AdminNotes, 2000)
	problem.ReviewedBy = actor.UserID
	problem.ReviewedAt = &now
	if err := s.problems.Update(ctx, problem); err != nil {
		return nil, err
	}
	log.Info().Str("problem_id", problem.ID).Str("status", problem.Status).
		Str("actor_id", actor.UserID).Msg("problem moderated")
	return problem, nil
}

func (s *problemService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.problems.DeleteCascade(ctx, id); err != nil {
		return err
	}
	log.Info().Str("problem_id", id).Msg("problem deleted with its proposals")
	return nil
}

func (s *problemService) StatusCounts(ctx context.Context) (map[string]int, error) {
	return s.problems.CountByStatus(ctx)
}

func (s *problemService) SubmitProposal(ctx context.Context, actor *auth.Session, input ProposalInput) (*model.SolutionProposal, error) {
	problem, err := s.Get(ctx, input.ProblemID)
	if err != nil {
		return nil, err
	}
	// Only approved problems accept proposals.
	if problem.Status != model.StatusApproved {
		return nil, errors.ErrProblemNotFound
	}

	summary := sanitize.Text(input.Summary, 500)
	if len(summary) < 10 {
		return nil, errors.NewValidation("summary must be at least 10 characters")
	}
	details := sanitize.Text(input.Details, 10000)
	if len(details) < 20 {
		return nil, errors.NewValidation("details must be at least 20 characters")
	}

	proposal := &model.SolutionProposal{
		ID:           uuid.New().String(),
		ProblemID:    problem.ID,
		ProblemTitle: problem.Title,
		UserID:       actor.UserID,
		UserName:     actor.Name,
		UserEmail:    actor.Email,
		Summary:      summary,
		Details:      details,
		Status:       model.StatusPending,
		SubmittedAt:  time.Now(),
	}
	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, err
	}
	log.Info().Str("problem_id", problem.ID).Str("user_id", actor.UserID).Msg("solution proposed")
	return proposal, nil
}

func (s *problemService) ListProposals(ctx context.Context, problemID string) ([]model.SolutionProposal, error) {
	if problemID == "" {
		return s.proposals.List(ctx)
	}
	return s.proposals.ListByProblem(ctx, problemID)
}

func (s *problemService) ReviewProposal(ctx context.Context, actor *auth.Session, id, status string) (*model.SolutionProposal, error) {
	if status != model.StatusApproved && status != model.StatusRejected {
		return nil, errors.NewValidation("status must be approved or rejected")
	}
	proposal, err := s.proposals.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrProblemNotFound
		}
		return nil, err
	}

	now := time.Now()
	proposal.Status = status
	proposal.ReviewedBy = actor.UserID
	proposal.ReviewedAt = &now
	if err := s.proposals.Update(ctx, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}
