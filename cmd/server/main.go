package main

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	_ "foundation/docs" // swagger docs

	"foundation/internal/auth"
	"foundation/internal/cache"
	"foundation/internal/config"
	"foundation/internal/db"
	"foundation/internal/handler"
	"foundation/internal/logger"
	"foundation/internal/model"
	"foundation/internal/repository"
	"foundation/internal/router"
	"foundation/internal/service"
)

// @title Problem Solver Foundation API
// @version 1.0
// @description Nonprofit platform API with session authentication, role-based admin panel, community problems, projects, blog and applications.
// @BasePath /api
// @schemes http https
func main() {
	cfg := config.Load()
	logger.Init(cfg.IsProduction())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Project{},
		&model.ProjectInterest{},
		&model.Problem{},
		&model.SolutionProposal{},
		&model.Application{},
		&model.ContactMessage{},
		&model.Discussion{},
		&model.DiscussionReply{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Auth components: Redis-backed sessions behind a signed cookie, the
	// per-address login limiter, and the route guards.
	sessionStore := auth.NewRedisSessionStore(cacheClient)
	sessions := auth.NewManager(sessionStore, cfg.SessionSecret, cfg.SessionMaxAge, cfg.IsProduction())
	limiter := auth.NewLoginLimiter(config.MaxLoginAttempts, config.LoginBlockDuration)
	guard := auth.NewGuard(sessions)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	interestRepo := repository.NewInterestRepository(gormDB)
	problemRepo := repository.NewProblemRepository(gormDB)
	proposalRepo := repository.NewProposalRepository(gormDB)
	applicationRepo := repository.NewApplicationRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)
	discussionRepo := repository.NewDiscussionRepository(gormDB)

	// Services
	statsService := service.NewStatsService(projectRepo, cacheClient)
	authService := service.NewAuthService(userRepo, limiter)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo)
	projectService := service.NewProjectService(projectRepo, interestRepo, statsService)
	problemService := service.NewProblemService(problemRepo, proposalRepo)
	applicationService := service.NewApplicationService(applicationRepo)
	contactService := service.NewContactService(contactRepo)
	discussionService := service.NewDiscussionService(discussionRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, sessions)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	projectHandler := handler.NewProjectHandler(projectService, statsService)
	problemHandler := handler.NewProblemHandler(problemService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	contactHandler := handler.NewContactHandler(contactService)
	discussionHandler := handler.NewDiscussionHandler(discussionService)
	dashboardHandler := handler.NewDashboardHandler(statsService, applicationService, problemService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	router.Register(
		e,
		cfg,
		guard,
		authHandler,
		userHandler,
		postHandler,
		projectHandler,
		problemHandler,
		applicationHandler,
		contactHandler,
		discussionHandler,
		dashboardHandler,
	)

	// Background jobs: purge expired login blocks and keep the impact
	// stats cache warm.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every "+config.RateLimitSweepInterval.String(), func() {
		if purged := limiter.Sweep(); purged > 0 {
			log.Debug().Int("purged", purged).Msg("login limiter sweep")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("schedule limiter sweep")
	}
	if _, err := scheduler.AddFunc("@every "+config.StatsRefreshInterval.String(), func() {
		if _, err := statsService.Refresh(context.Background()); err != nil {
			log.Error().Err(err).Msg("stats refresh")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("schedule stats refresh")
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.SwaggerHost != "" {
		log.Info().Str("url", cfg.SwaggerHost+"/swagger/index.html").Msg("swagger ui")
	}
	log.Info().Str("port", cfg.ServerPort).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
