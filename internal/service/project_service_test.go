package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"foundation/internal/errors"
	"foundation/internal/model"
)

func validProjectInput() ProjectInput {
	return ProjectInput{
		Title:       "Solar microgrids",
		Description: "Village scale solar for clinics",
		Category:    model.CategorySolutions,
		Progress:    40,
		Metrics:     model.ProjectMetrics{LivesImpacted: 1200, VolunteersInvolved: 15},
		IsPublished: true,
	}
}

func TestProjectService_Create(t *testing.T) {
	t.Run("clamps progress and metrics", func(t *testing.T) {
		projects := new(MockProjectRepository)
		projects.On("Create", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)
		svc := NewProjectService(projects, new(MockInterestRepository), nil)

		input := validProjectInput()
		input.Progress = 250
		input.Metrics.LivesImpacted = -5
		project, err := svc.Create(context.Background(), input)

		assert.NoError(t, err)
		assert.Equal(t, 100, project.Progress)
		assert.Zero(t, project.Metrics.LivesImpacted)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		svc := NewProjectService(new(MockProjectRepository), new(MockInterestRepository), nil)

		input := validProjectInput()
		input.Category = "outreach"
		_, err := svc.Create(context.Background(), input)

		assert.ErrorIs(t, err, errors.ErrInvalidCategory)
	})
}

func TestProjectService_Delete_Cascades(t *testing.T) {
	projects := new(MockProjectRepository)
	projects.On("FindByID", mock.Anything, "proj-1").Return(&model.Project{ID: "proj-1"}, nil)
	projects.On("DeleteCascade", mock.Anything, "proj-1").Return(nil)
	svc := NewProjectService(projects, new(MockInterestRepository), nil)

	err := svc.Delete(context.Background(), "proj-1")

	assert.NoError(t, err)
	projects.AssertExpectations(t)
}

func TestProjectService_GetPublished_HidesDrafts(t *testing.T) {
	projects := new(MockProjectRepository)
	projects.On("FindByID", mock.Anything, "proj-1").
		Return(&model.Project{ID: "proj-1", IsPublished: false}, nil)
	svc := NewProjectService(projects, new(MockInterestRepository), nil)

	_, err := svc.GetPublished(context.Background(), "proj-1")

	assert.ErrorIs(t, err, errors.ErrProjectNotFound)
}

func TestProjectService_RegisterInterest(t *testing.T) {
	t.Run("snapshots the actor and project", func(t *testing.T) {
		projects := new(MockProjectRepository)
		interests := new(MockInterestRepository)
		projects.On("FindByID", mock.Anything, "proj-1").
			Return(&model.Project{ID: "proj-1", Title: "Solar microgrids", IsPublished: true}, nil)
		interests.On("FindByProjectAndUser", mock.Anything, "proj-1", "actor-1").
			Return(nil, gorm.ErrRecordNotFound)
		interests.On("Create", mock.Anything, mock.AnythingOfType("*model.ProjectInterest")).Return(nil)
		svc := NewProjectService(projects, interests, nil)

		interest, err := svc.RegisterInterest(context.Background(), sessionFor(model.RoleUser), InterestInput{
			ProjectID: "proj-1",
			Message:   "I am an electrician with off-grid experience.",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Solar microgrids", interest.ProjectTitle)
		assert.Equal(t, "Acting User", interest.UserName)
		assert.Equal(t, model.StatusPending, interest.Status)
	})

	t.Run("rejects a second interest in the same project", func(t *testing.T) {
		projects := new(MockProjectRepository)
		interests := new(MockInterestRepository)
		projects.On("FindByID", mock.Anything, "proj-1").
			Return(&model.Project{ID: "proj-1", IsPublished: true}, nil)
		interests.On("FindByProjectAndUser", mock.Anything, "proj-1", "actor-1").
			Return(&model.ProjectInterest{ID: "existing"}, nil)
		svc := NewProjectService(projects, interests, nil)

		_, err := svc.RegisterInterest(context.Background(), sessionFor(model.RoleUser), InterestInput{ProjectID: "proj-1"})

		var ve *errors.ValidationError
		assert.ErrorAs(t, err, &ve)
		interests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
