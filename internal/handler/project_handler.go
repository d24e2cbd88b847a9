package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"foundation/internal/auth"
	"foundation/internal/service"
)

// ProjectHandler serves the public project endpoints, the admin project
// API, and the community interest flow.
type ProjectHandler struct {
	projectService service.ProjectService
	statsService   *service.StatsService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService, statsService *service.StatsService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, statsService: statsService}
}

// ProgressRequest carries a progress-only update.
type ProgressRequest struct {
	Progress int `json:"progress"`
}

// ReviewRequest carries a moderation decision.
type ReviewRequest struct {
	Status string `json:"status"`
}

// ListPublished godoc
// @Summary List published projects
// @Tags projects
// @Produce json
// @Param category query string false "Filter by category (solutions, progress, impact)"
// @Param limit query int false "Maximum number of projects"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) ListPublished(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	projects, err := h.projectService.ListPublished(c.Request().Context(), c.QueryParam("category"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, projects)
}

// GetPublished godoc
// @Summary Get a published project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetPublished(c echo.Context) error {
	project, err := h.projectService.GetPublished(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, project)
}

// Stats godoc
// @Summary Aggregate impact numbers across published projects
// @Tags projects
// @Produce json
// @Success 200 {object} DataResponse
// @Router /projects/stats [get]
func (h *ProjectHandler) Stats(c echo.Context) error {
	stats, err := h.statsService.Impact(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, stats)
}

// ListAll returns every project, drafts included, for the admin panel.
func (h *ProjectHandler) ListAll(c echo.Context) error {
	projects, err := h.projectService.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, projects)
}

// Get returns one project by id for the admin panel.
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projectService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, project)
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body service.ProjectInput true "Project data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var input service.ProjectInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	project, err := h.projectService.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, project)
}

// Update replaces a project's fields.
func (h *ProjectHandler) Update(c echo.Context) error {
	var input service.ProjectInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	project, err := h.projectService.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, project)
}

// UpdateProgress changes only the progress value.
func (h *ProjectHandler) UpdateProgress(c echo.Context) error {
	var req ProgressRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	project, err := h.projectService.UpdateProgress(c.Request().Context(), c.Param("id"), req.Progress)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, project)
}

// Delete removes a project along with its interest records.
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.projectService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "project deleted")
}

// RegisterInterest lets a community member volunteer for a project.
func (h *ProjectHandler) RegisterInterest(c echo.Context) error {
	var input service.InterestInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	input.ProjectID = c.Param("id")
	interest, err := h.projectService.RegisterInterest(c.Request().Context(), auth.CurrentSession(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, interest)
}

// ListInterests returns all volunteer interests for the admin panel.
func (h *ProjectHandler) ListInterests(c echo.Context) error {
	interests, err := h.projectService.ListInterests(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, interests)
}

// ReviewInterest approves or rejects a volunteer interest.
func (h *ProjectHandler) ReviewInterest(c echo.Context) error {
	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	interest, err := h.projectService.ReviewInterest(c.Request().Context(), auth.CurrentSession(c), c.Param("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, interest)
}
