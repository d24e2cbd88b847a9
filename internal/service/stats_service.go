package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"foundation/internal/cache"
	"foundation/internal/config"
	"foundation/internal/repository"
)

const (
	statsCacheKey = "stats:impact"
	statsCacheTTL = config.StatsRefreshInterval
)

// ImpactStats aggregates the published projects for the public site.
type ImpactStats struct {
	TotalProjects      int       `json:"totalProjects"`
	ActiveProjects     int       `json:"activeProjects"`
	LivesImpacted      int       `json:"livesImpacted"`
	VolunteersInvolved int       `json:"volunteersInvolved"`
	AverageProgress    int       `json:"averageProgress"`
	GeneratedAt        time.Time `json:"generatedAt"`
}

// StatsService computes the homepage impact numbers from published projects
// and caches the result in Redis. A cache failure only costs a recompute.
type StatsService struct {
	projects repository.ProjectRepository
	cache    *cache.Client
}

// NewStatsService creates a new stats service.
func NewStatsService(projects repository.ProjectRepository, cache *cache.Client) *StatsService {
	return &StatsService{projects: projects, cache: cache}
}

// Impact returns the aggregate, from cache when fresh.
func (s *StatsService) Impact(ctx context.Context) (*ImpactStats, error) {
	if data, err := s.cache.Get(ctx, statsCacheKey); err == nil && data != nil {
		var stats ImpactStats
		if json.Unmarshal(data, &stats) == nil {
			return &stats, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the aggregate and rewrites the cache. The cron job
// calls this on a schedule so the public site rarely pays for the scan.
func (s *StatsService) Refresh(ctx context.Context) (*ImpactStats, error) {
	projects, err := s.projects.List(ctx, repository.ProjectFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}

	stats := &ImpactStats{
		TotalProjects: len(projects),
		GeneratedAt:   time.Now(),
	}
	progressSum := 0
	for _, p := range projects {
		if p.Status == "active" {
			stats.ActiveProjects++
		}
		stats.LivesImpacted += p.Metrics.LivesImpacted
		stats.VolunteersInvolved += p.Metrics.VolunteersInvolved
		progressSum += p.Progress
	}
	if len(projects) > 0 {
		stats.AverageProgress = progressSum / len(projects)
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}
	log.Debug().Int("projects", stats.TotalProjects).Msg("impact stats refreshed")
	return stats, nil
}

// Invalidate drops the cached aggregate after a project mutation.
func (s *StatsService) Invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, statsCacheKey)
}
