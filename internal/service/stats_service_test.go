package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"foundation/internal/model"
	"foundation/internal/repository"
)

func TestStatsService_Refresh(t *testing.T) {
	projects := new(MockProjectRepository)
	projects.On("List", mock.Anything, repository.ProjectFilter{PublishedOnly: true}).Return([]model.Project{
		{ID: "p1", Status: "active", Progress: 40, Metrics: model.ProjectMetrics{LivesImpacted: 100, VolunteersInvolved: 5}},
		{ID: "p2", Status: "completed", Progress: 100, Metrics: model.ProjectMetrics{LivesImpacted: 900, VolunteersInvolved: 20}},
	}, nil)
	svc := NewStatsService(projects, nil)

	stats, err := svc.Refresh(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, 1, stats.ActiveProjects)
	assert.Equal(t, 1000, stats.LivesImpacted)
	assert.Equal(t, 25, stats.VolunteersInvolved)
	assert.Equal(t, 70, stats.AverageProgress)
	assert.False(t, stats.GeneratedAt.IsZero())
}

func TestStatsService_Refresh_Empty(t *testing.T) {
	projects := new(MockProjectRepository)
	projects.On("List", mock.Anything, repository.ProjectFilter{PublishedOnly: true}).Return([]model.Project{}, nil)
	svc := NewStatsService(projects, nil)

	stats, err := svc.Refresh(context.Background())

	assert.NoError(t, err)
	assert.Zero(t, stats.TotalProjects)
	assert.Zero(t, stats.AverageProgress)
}
