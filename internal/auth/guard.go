package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"foundation/internal/model"
)

// Route targets used by the guards.
const (
	SignInPath           = "/signin"
	AdminLandingPath     = "/admin/dashboard"
	CommunityLandingPath = "/admin/community-dashboard"
)

const sessionContextKey = "session"

// Guard gates routes on authentication state and role. Failures always
// resolve to a redirect or a 403-class response, never a process error.
type Guard struct {
	sessions *Manager
}

// NewGuard builds route guards over the session manager.
func NewGuard(sessions *Manager) *Guard {
	return &Guard{sessions: sessions}
}

// CurrentSession returns the session attached to the request, or nil.
func CurrentSession(c echo.Context) *Session {
	s, _ := c.Get(sessionContextKey).(*Session)
	return s
}

// LandingFor maps a role to its post-login destination.
func LandingFor(role model.Role) string {
	if role == model.RoleUser {
		return CommunityLandingPath
	}
	return AdminLandingPath
}

// resolve loads and integrity-checks the request's session. A session
// failing the integrity check is destroyed immediately and the client
// cookie cleared: fail closed, and log it as a security event.
func (g *Guard) resolve(c echo.Context) *Session {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	session, err := g.sessions.Load(c.Request().Context(), cookie.Value)
	if err != nil || session == nil {
		return nil
	}

	if !session.IntegrityOK() {
		log.Warn().
			Str("remote_addr", c.RealIP()).
			Str("session_id", session.ID).
			Msg("destroying session with invalid snapshot")
		_ = g.sessions.Destroy(c.Request().Context(), session)
		c.SetCookie(g.sessions.ClearCookie())
		return nil
	}
	return session
}

// RequireAuth redirects unauthenticated requests to the sign-in page.
func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := g.resolve(c)
		if session == nil {
			return c.Redirect(http.StatusFound, SignInPath)
		}
		c.Set(sessionContextKey, session)
		return next(c)
	}
}

// RequireAdmin applies RequireAuth semantics, then denies non-admin roles
// with a 403 rather than a redirect (avoids redirect loops).
func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return g.RequireAuth(func(c echo.Context) error {
		session := CurrentSession(c)
		if !CanAccessAdminArea(session.Role) {
			log.Warn().
				Str("user_id", session.UserID).
				Str("role", string(session.Role)).
				Str("path", c.Path()).
				Msg("admin area access denied")
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"error":   "Access denied. Admin privileges required.",
			})
		}
		return next(c)
	})
}

// RedirectIfAuthenticated skips the login surface for clients that already
// hold a valid session, routing them to the role-appropriate landing page.
// Corrupt sessions were already destroyed by resolve, so they fall through
// to the login page instead of looping.
func (g *Guard) RedirectIfAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if session := g.resolve(c); session != nil {
			return c.Redirect(http.StatusFound, LandingFor(session.Role))
		}
		return next(c)
	}
}
