package main

import (
	"context"
	stderrors "errors"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foundation/internal/config"
	"foundation/internal/db"
	"foundation/internal/logger"
	"foundation/internal/model"
	"foundation/internal/repository"
)

// Seeds the first superuser and a few published projects so a fresh
// install has something to show. Safe to run repeatedly.
func main() {
	cfg := config.Load()
	logger.Init(cfg.IsProduction())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Project{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	ctx := context.Background()
	seedSuperuser(ctx, repository.NewUserRepository(gormDB))
	seedProjects(ctx, repository.NewProjectRepository(gormDB))
	log.Info().Msg("seed complete")
}

func seedSuperuser(ctx context.Context, users repository.UserRepository) {
	email := getEnv("SEED_SUPERUSER_EMAIL", "admin@foundation.local")
	password := getEnv("SEED_SUPERUSER_PASSWORD", "change-me-now")
	name := getEnv("SEED_SUPERUSER_NAME", "Platform Admin")

	if existing, err := users.FindByEmail(ctx, email); err == nil && existing != nil {
		log.Info().Str("email", email).Msg("superuser already present, skipping")
		return
	} else if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("superuser lookup")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), config.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash superuser password")
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleSuperuser,
		IsActive:     true,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("create superuser")
	}
	log.Info().Str("email", email).Msg("superuser created")
}

func seedProjects(ctx context.Context, projects repository.ProjectRepository) {
	existing, err := projects.List(ctx, repository.ProjectFilter{})
	if err != nil {
		log.Fatal().Err(err).Msg("project lookup")
	}
	if len(existing) > 0 {
		log.Info().Int("count", len(existing)).Msg("projects already present, skipping")
		return
	}

	samples := []model.Project{
		{
			ID:          uuid.New().String(),
			Title:       "Clean Water Wells",
			Description: "Drilling and repairing wells in drought-affected districts.",
			Category:    model.CategorySolutions,
			Status:      "active",
			Progress:    65,
			Metrics:     model.ProjectMetrics{LivesImpacted: 3400, VolunteersInvolved: 28},
			IsPublished: true,
		},
		{
			ID:          uuid.New().String(),
			Title:       "Rural School Solar Power",
			Description: "Off-grid solar installations for schools without electricity.",
			Category:    model.CategoryProgress,
			Status:      "active",
			Progress:    40,
			Metrics:     model.ProjectMetrics{LivesImpacted: 1200, VolunteersInvolved: 12},
			IsPublished: true,
		},
		{
			ID:             uuid.New().String(),
			Title:          "Mobile Health Clinics",
			Description:    "Vans bringing basic care to remote villages, completed 2025.",
			Category:       model.CategoryImpact,
			Status:         "completed",
			Progress:       100,
			CompletionDate: "2025-11-30",
			Metrics:        model.ProjectMetrics{LivesImpacted: 8900, VolunteersInvolved: 45},
			IsPublished:    true,
		},
	}
	for i := range samples {
		if err := projects.Create(ctx, &samples[i]); err != nil {
			log.Fatal().Err(err).Str("title", samples[i].Title).Msg("create project")
		}
	}
	log.Info().Int("count", len(samples)).Msg("sample projects created")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
