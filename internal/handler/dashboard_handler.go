package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foundation/internal/auth"
	"foundation/internal/service"
)

// DashboardHandler serves the two post-login landing endpoints.
type DashboardHandler struct {
	statsService       *service.StatsService
	applicationService service.ApplicationService
	problemService     service.ProblemService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(statsService *service.StatsService, applicationService service.ApplicationService, problemService service.ProblemService) *DashboardHandler {
	return &DashboardHandler{
		statsService:       statsService,
		applicationService: applicationService,
		problemService:     problemService,
	}
}

// Admin summarizes the moderation queues for admin-area roles.
func (h *DashboardHandler) Admin(c echo.Context) error {
	ctx := c.Request().Context()

	impact, err := h.statsService.Impact(ctx)
	if err != nil {
		return respondError(c, err)
	}
	applications, err := h.applicationService.Stats(ctx)
	if err != nil {
		return respondError(c, err)
	}
	problems, err := h.problemService.StatusCounts(ctx)
	if err != nil {
		return respondError(c, err)
	}

	session := auth.CurrentSession(c)
	return respondData(c, http.StatusOK, echo.Map{
		"user":         sessionResponse(session),
		"impact":       impact,
		"applications": applications,
		"problems":     problems,
	})
}

// Community greets a signed-in community member with their own activity.
func (h *DashboardHandler) Community(c echo.Context) error {
	session := auth.CurrentSession(c)
	problems, err := h.problemService.ListMine(c.Request().Context(), session)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{
		"user":     sessionResponse(session),
		"problems": problems,
	})
}
