package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foundation/internal/auth"
	"foundation/internal/service"
)

// ProblemHandler serves the community problem endpoints, the proposal
// endpoints and the admin moderation API.
type ProblemHandler struct {
	problemService service.ProblemService
}

// NewProblemHandler creates a new problem handler.
func NewProblemHandler(problemService service.ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: problemService}
}

// Submit godoc
// @Summary Submit a community problem
// @Tags problems
// @Accept json
// @Produce json
// @Param request body service.ProblemInput true "Problem data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /problems [post]
func (h *ProblemHandler) Submit(c echo.Context) error {
	var input service.ProblemInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	problem, err := h.problemService.Submit(c.Request().Context(), auth.CurrentSession(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, problem)
}

// ListApproved godoc
// @Summary List approved problems
// @Tags problems
// @Produce json
// @Param field query string false "Filter by knowledge field"
// @Success 200 {object} DataResponse
// @Router /problems [get]
func (h *ProblemHandler) ListApproved(c echo.Context) error {
	problems, err := h.problemService.ListApproved(c.Request().Context(), c.QueryParam("field"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, problems)
}

// ListMine returns the acting user's own submissions regardless of status.
func (h *ProblemHandler) ListMine(c echo.Context) error {
	problems, err := h.problemService.ListMine(c.Request().Context(), auth.CurrentSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, problems)
}

// ListAll returns problems in any status for the admin moderation queue.
func (h *ProblemHandler) ListAll(c echo.Context) error {
	problems, err := h.problemService.ListAll(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, problems)
}

// Get returns one problem by id.
func (h *ProblemHandler) Get(c echo.Context) error {
	problem, err := h.problemService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, problem)
}

// Moderate godoc
// @Summary Approve or reject a problem
// @Tags problems
// @Accept json
// @Produce json
// @Param id path string true "Problem ID"
// @Param request body service.ModerateProblemInput true "Moderation decision"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/problems/{id}/moderate [put]
func (h *ProblemHandler) Moderate(c echo.Context) error {
	var input service.ModerateProblemInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	problem, err := h.problemService.Moderate(c.Request().Context(), auth.CurrentSession(c), c.Param("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, problem)
}

// Delete removes a problem along with its proposals.
func (h *ProblemHandler) Delete(c echo.Context) error {
	if err := h.problemService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "problem deleted")
}

// StatusCounts returns the moderation queue totals.
func (h *ProblemHandler) StatusCounts(c echo.Context) error {
	counts, err := h.problemService.StatusCounts(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, counts)
}

// SubmitProposal lets a community member propose a solution to an
// approved problem.
func (h *ProblemHandler) SubmitProposal(c echo.Context) error {
	var input service.ProposalInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	input.ProblemID = c.Param("id")
	proposal, err := h.problemService.SubmitProposal(c.Request().Context(), auth.CurrentSession(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, proposal)
}

// ListProposals returns proposals, optionally scoped to one problem.
func (h *ProblemHandler) ListProposals(c echo.Context) error {
	proposals, err := h.problemService.ListProposals(c.Request().Context(), c.QueryParam("problemId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, proposals)
}

// ReviewProposal approves or rejects a proposal.
func (h *ProblemHandler) ReviewProposal(c echo.Context) error {
	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	proposal, err := h.problemService.ReviewProposal(c.Request().Context(), auth.CurrentSession(c), c.Param("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, proposal)
}
