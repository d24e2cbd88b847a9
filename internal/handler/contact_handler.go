package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foundation/internal/service"
)

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// StatusRequest carries an inbox status change.
type StatusRequest struct {
	Status string `json:"status"`
}

// Submit godoc
// @Summary Submit a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body service.ContactInput true "Message data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var input service.ContactInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	message, err := h.contactService.Submit(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, message)
}

// List returns the whole inbox for the admin panel.
func (h *ContactHandler) List(c echo.Context) error {
	messages, err := h.contactService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, messages)
}

// Get returns one message by id.
func (h *ContactHandler) Get(c echo.Context) error {
	message, err := h.contactService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, message)
}

// UpdateStatus moves a message through the inbox workflow.
func (h *ContactHandler) UpdateStatus(c echo.Context) error {
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	message, err := h.contactService.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, message)
}

// Delete removes a message.
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.contactService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "message deleted")
}
