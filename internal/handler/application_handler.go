package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foundation/internal/auth"
	"foundation/internal/service"
)

// ApplicationHandler serves the public application form and the admin
// review pipeline.
type ApplicationHandler struct {
	applicationService service.ApplicationService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(applicationService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Submit godoc
// @Summary Submit a problem-solver application
// @Tags applications
// @Accept json
// @Produce json
// @Param request body service.ApplicationInput true "Application data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var input service.ApplicationInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	application, err := h.applicationService.Submit(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, application)
}

// List returns every application for the admin panel.
func (h *ApplicationHandler) List(c echo.Context) error {
	applications, err := h.applicationService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, applications)
}

// Get returns one application by id.
func (h *ApplicationHandler) Get(c echo.Context) error {
	application, err := h.applicationService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, application)
}

// Review godoc
// @Summary Update an application's review state
// @Tags applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body service.ReviewApplicationInput true "Review fields"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/applications/{id} [put]
func (h *ApplicationHandler) Review(c echo.Context) error {
	var input service.ReviewApplicationInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	application, err := h.applicationService.Review(c.Request().Context(), auth.CurrentSession(c), c.Param("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, application)
}

// Delete removes an application.
func (h *ApplicationHandler) Delete(c echo.Context) error {
	if err := h.applicationService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "application deleted")
}

// Stats returns the status totals for the admin dashboard.
func (h *ApplicationHandler) Stats(c echo.Context) error {
	stats, err := h.applicationService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, stats)
}
