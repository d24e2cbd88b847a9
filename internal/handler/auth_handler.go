package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"foundation/internal/auth"
	"foundation/internal/service"
	"foundation/internal/view"
)

// AuthHandler serves the sign-in surface and the session endpoints.
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.Manager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *auth.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// LoginRequest represents the sign-in form or JSON body.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// SessionResponse describes the authenticated user behind a session.
type SessionResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// ShowLogin renders the sign-in page. Authenticated clients never reach
// this handler; the guard redirects them to their landing page first.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", view.LoginData{})
}

// Login authenticates the submitted credentials. Browser form submissions
// get a redirect or a re-rendered login page; JSON clients get JSON.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, c.RealIP())
	if err != nil {
		if wantsHTML(c) {
			return c.Render(http.StatusUnauthorized, "login.html", view.LoginData{
				Error: err.Error(),
				Email: req.Email,
			})
		}
		return respondError(c, err)
	}

	// The session is stored before the response leaves: a client following
	// the redirect always finds its state.
	session, cookie, err := h.sessions.Issue(c.Request().Context(), user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to issue session")
		return respondError(c, err)
	}
	c.SetCookie(cookie)

	if wantsHTML(c) {
		return c.Redirect(http.StatusFound, auth.LandingFor(session.Role))
	}
	return respondData(c, http.StatusOK, echo.Map{
		"redirect": auth.LandingFor(session.Role),
		"user":     sessionResponse(session),
	})
}

// Logout destroys the session and clears the cookie. It is safe to call
// without a session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if session := auth.CurrentSession(c); session != nil {
		if err := h.sessions.Destroy(c.Request().Context(), session); err != nil {
			log.Error().Err(err).Str("session_id", session.ID).Msg("failed to destroy session")
		}
	}
	c.SetCookie(h.sessions.ClearCookie())

	if wantsHTML(c) {
		return c.Redirect(http.StatusFound, auth.SignInPath)
	}
	return respondMessage(c, http.StatusOK, "logged out")
}

// Me godoc
// @Summary Describe the current session
// @Tags auth
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session := auth.CurrentSession(c)
	return respondData(c, http.StatusOK, sessionResponse(session))
}

func sessionResponse(session *auth.Session) SessionResponse {
	return SessionResponse{
		UserID: session.UserID,
		Email:  session.Email,
		Name:   session.Name,
		Role:   string(session.Role),
	}
}

// wantsHTML distinguishes browser form submissions from API clients.
func wantsHTML(c echo.Context) bool {
	if strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm) {
		return true
	}
	return strings.Contains(c.Request().Header.Get("Accept"), echo.MIMETextHTML)
}
