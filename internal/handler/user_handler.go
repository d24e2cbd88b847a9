package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foundation/internal/auth"
	"foundation/internal/service"
)

// UserHandler serves the admin user-management endpoints and the profile
// self-service endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, users)
}

// Get godoc
// @Summary Get one user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, user)
}

// Create godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.CreateUserInput true "User data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var input service.CreateUserInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	user, err := h.userService.Create(c.Request().Context(), auth.CurrentSession(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, user)
}

// Update godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body service.UpdateUserInput true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var input service.UpdateUserInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	user, err := h.userService.Update(c.Request().Context(), auth.CurrentSession(c), c.Param("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, user)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} DataResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), auth.CurrentSession(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "user deleted")
}

// Roles godoc
// @Summary Describe the role catalog
// @Tags users
// @Produce json
// @Success 200 {object} DataResponse
// @Router /admin/users/roles [get]
func (h *UserHandler) Roles(c echo.Context) error {
	return respondData(c, http.StatusOK, h.userService.Roles())
}

// Profile returns the acting user's own record.
func (h *UserHandler) Profile(c echo.Context) error {
	session := auth.CurrentSession(c)
	user, err := h.userService.GetProfile(c.Request().Context(), session.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, user)
}

// UpdateProfile applies a self-service profile update.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var input service.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	session := auth.CurrentSession(c)
	user, err := h.userService.UpdateProfile(c.Request().Context(), session.UserID, input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, user)
}
