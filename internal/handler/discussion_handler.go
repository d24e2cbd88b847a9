package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foundation/internal/auth"
	"foundation/internal/service"
)

// DiscussionHandler serves the community forum endpoints.
type DiscussionHandler struct {
	discussionService service.DiscussionService
}

// NewDiscussionHandler creates a new discussion handler.
func NewDiscussionHandler(discussionService service.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{discussionService: discussionService}
}

// Create godoc
// @Summary Open a forum thread
// @Tags forum
// @Accept json
// @Produce json
// @Param request body service.DiscussionInput true "Thread data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /discussions [post]
func (h *DiscussionHandler) Create(c echo.Context) error {
	var input service.DiscussionInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	discussion, err := h.discussionService.Create(c.Request().Context(), auth.CurrentSession(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, discussion)
}

// List returns every thread with its reply count.
func (h *DiscussionHandler) List(c echo.Context) error {
	discussions, err := h.discussionService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, discussions)
}

// Get returns one thread with its replies.
func (h *DiscussionHandler) Get(c echo.Context) error {
	detail, err := h.discussionService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, detail)
}

// Reply adds an answer to a thread.
func (h *DiscussionHandler) Reply(c echo.Context) error {
	var input service.ReplyInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	reply, err := h.discussionService.Reply(c.Request().Context(), auth.CurrentSession(c), c.Param("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, reply)
}

// Delete removes a thread. Only the author or an admin-area role may do it.
func (h *DiscussionHandler) Delete(c echo.Context) error {
	if err := h.discussionService.Delete(c.Request().Context(), auth.CurrentSession(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "discussion deleted")
}
