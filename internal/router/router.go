package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"foundation/internal/auth"
	"foundation/internal/config"
	"foundation/internal/handler"
	"foundation/internal/view"
)

// CustomValidator adapts go-playground/validator to echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates a bound request struct.
func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Register wires routes, middleware and guards.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	guard *auth.Guard,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	projectHandler *handler.ProjectHandler,
	problemHandler *handler.ProblemHandler,
	applicationHandler *handler.ApplicationHandler,
	contactHandler *handler.ContactHandler,
	discussionHandler *handler.DiscussionHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Renderer = view.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler(e)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Sign-in surface. Holders of a valid session skip straight to their
	// landing page.
	e.GET(auth.SignInPath, authHandler.ShowLogin, guard.RedirectIfAuthenticated)
	e.POST(auth.SignInPath, authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// Public blog pages.
	e.GET("/blog", postHandler.BlogPage)
	e.GET("/blog/:slug", postHandler.BlogPostPage)

	// Post-login landing pages.
	e.GET(auth.AdminLandingPath, dashboardHandler.Admin, guard.RequireAdmin)
	e.GET(auth.CommunityLandingPath, dashboardHandler.Community, guard.RequireAuth)

	api := e.Group("/api")

	// Public JSON API.
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/posts", postHandler.ListPublished)
	api.GET("/posts/:slug", postHandler.GetPublished)
	api.GET("/projects", projectHandler.ListPublished)
	api.GET("/projects/stats", projectHandler.Stats)
	api.GET("/projects/:id", projectHandler.GetPublished)
	api.GET("/problems", problemHandler.ListApproved)
	api.POST("/applications", applicationHandler.Submit)
	api.POST("/contact", contactHandler.Submit)

	// Signed-in community API.
	community := api.Group("", guard.RequireAuth)
	community.GET("/auth/me", authHandler.Me)
	community.GET("/profile", userHandler.Profile)
	community.PUT("/profile", userHandler.UpdateProfile)
	community.POST("/problems", problemHandler.Submit)
	community.GET("/problems/mine", problemHandler.ListMine)
	community.POST("/problems/:id/proposals", problemHandler.SubmitProposal)
	community.POST("/projects/:id/interest", projectHandler.RegisterInterest)
	community.GET("/discussions", discussionHandler.List)
	community.GET("/discussions/:id", discussionHandler.Get)
	community.POST("/discussions", discussionHandler.Create)
	community.POST("/discussions/:id/replies", discussionHandler.Reply)
	community.DELETE("/discussions/:id", discussionHandler.Delete)

	// Admin API. Non-admin roles get a JSON 403, never a redirect.
	admin := api.Group("/admin", guard.RequireAdmin)

	admin.GET("/users", userHandler.List)
	admin.GET("/users/roles", userHandler.Roles)
	admin.GET("/users/:id", userHandler.Get)
	admin.POST("/users", userHandler.Create)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)

	admin.GET("/posts", postHandler.ListAll)
	admin.GET("/posts/:id", postHandler.Get)
	admin.POST("/posts", postHandler.Create)
	admin.PUT("/posts/:id", postHandler.Update)
	admin.DELETE("/posts/:id", postHandler.Delete)

	admin.GET("/projects", projectHandler.ListAll)
	admin.GET("/projects/:id", projectHandler.Get)
	admin.POST("/projects", projectHandler.Create)
	admin.PUT("/projects/:id", projectHandler.Update)
	admin.PUT("/projects/:id/progress", projectHandler.UpdateProgress)
	admin.DELETE("/projects/:id", projectHandler.Delete)
	admin.GET("/interests", projectHandler.ListInterests)
	admin.PUT("/interests/:id", projectHandler.ReviewInterest)

	admin.GET("/problems", problemHandler.ListAll)
	admin.GET("/problems/stats", problemHandler.StatusCounts)
	admin.GET("/problems/:id", problemHandler.Get)
	admin.PUT("/problems/:id/moderate", problemHandler.Moderate)
	admin.DELETE("/problems/:id", problemHandler.Delete)
	admin.GET("/proposals", problemHandler.ListProposals)
	admin.PUT("/proposals/:id", problemHandler.ReviewProposal)

	admin.GET("/applications", applicationHandler.List)
	admin.GET("/applications/stats", applicationHandler.Stats)
	admin.GET("/applications/:id", applicationHandler.Get)
	admin.PUT("/applications/:id", applicationHandler.Review)
	admin.DELETE("/applications/:id", applicationHandler.Delete)

	admin.GET("/contacts", contactHandler.List)
	admin.GET("/contacts/:id", contactHandler.Get)
	admin.PUT("/contacts/:id/status", contactHandler.UpdateStatus)
	admin.DELETE("/contacts/:id", contactHandler.Delete)
}

// errorHandler renders HTML error pages for page routes and defers to the
// default JSON handler everywhere else.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if strings.HasPrefix(c.Path(), "/api") || !wantsHTMLError(c) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		status := http.StatusInternalServerError
		message := "Something went wrong on our side."
		if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
		}
		if status == http.StatusNotFound {
			message = "The page you are looking for does not exist."
		}
		_ = c.Render(status, "error.html", view.ErrorData{Status: status, Message: message})
	}
}

func wantsHTMLError(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), echo.MIMETextHTML)
}
