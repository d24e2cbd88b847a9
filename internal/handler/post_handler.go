package handler

import (
	stderrors "errors"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"foundation/internal/errors"
	"foundation/internal/service"
)

// PostHandler serves the public blog pages and the admin blog API.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// BlogPage renders the public blog index.
func (h *PostHandler) BlogPage(c echo.Context) error {
	posts, err := h.postService.ListPublished(c.Request().Context(), c.QueryParam("category"), c.QueryParam("tag"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "blog_list.html", echo.Map{"Posts": posts})
}

// BlogPostPage renders one published post by slug.
func (h *PostHandler) BlogPostPage(c echo.Context) error {
	post, err := h.postService.GetPublishedBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if stderrors.Is(err, errors.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}
	// Content was sanitized at the write boundary; render it as HTML.
	return c.Render(http.StatusOK, "blog_post.html", echo.Map{
		"Post":    post,
		"Content": template.HTML(post.Content),
	})
}

// ListPublished godoc
// @Summary List published posts
// @Tags blog
// @Produce json
// @Param category query string false "Filter by category"
// @Param tag query string false "Filter by tag"
// @Success 200 {object} DataResponse
// @Router /posts [get]
func (h *PostHandler) ListPublished(c echo.Context) error {
	posts, err := h.postService.ListPublished(c.Request().Context(), c.QueryParam("category"), c.QueryParam("tag"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, posts)
}

// GetPublished godoc
// @Summary Get a published post by slug
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{slug} [get]
func (h *PostHandler) GetPublished(c echo.Context) error {
	post, err := h.postService.GetPublishedBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, post)
}

// ListAll returns every post, drafts included, for the admin panel.
func (h *PostHandler) ListAll(c echo.Context) error {
	posts, err := h.postService.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, posts)
}

// Get returns one post by id for the admin panel.
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.postService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, post)
}

// Create godoc
// @Summary Create a post
// @Tags blog
// @Accept json
// @Produce json
// @Param request body service.PostInput true "Post data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var input service.PostInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	post, err := h.postService.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, post)
}

// Update replaces a post's content and metadata.
func (h *PostHandler) Update(c echo.Context) error {
	var input service.PostInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}
	post, err := h.postService.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, post)
}

// Delete removes a post.
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.postService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "post deleted")
}
