package service

import (
	"context"
	stderrors "errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"foundation/internal/errors"
	"foundation/internal/model"
	"foundation/internal/repository"
	"foundation/internal/sanitize"
)

// Words per minute used for the reading-time estimate shown on posts.
const readingWordsPerMinute = 200

var slugInvalidRe = regexp.MustCompile(`[^a-z0-9]+`)

// PostInput is the admin payload for creating or updating a blog post.
type PostInput struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Author      string   `json:"author"`
	ImageURL    string   `json:"imageUrl"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"isPublished"`
}

// PostService covers the public blog reads and the admin-side CRUD.
type PostService interface {
	ListPublished(ctx context.Context, category, tag string) ([]model.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Post, error)
	ListAll(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, id string) (*model.Post, error)
	Create(ctx context.Context, input PostInput) (*model.Post, error)
	Update(ctx context.Context, id string, input PostInput) (*model.Post, error)
	Delete(ctx context.Context, id string) error
}

type postService struct {
	posts repository.PostRepository
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) ListPublished(ctx context.Context, category, tag string) ([]model.Post, error) {
	posts, err := s.posts.List(ctx, repository.PostFilter{
		Category:      strings.TrimSpace(category),
		Tag:           strings.TrimSpace(tag),
		PublishedOnly: true,
	})
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].ReadingTime = readingTime(posts[i].Content)
	}
	return posts, nil
}

func (s *postService) GetPublishedBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post, err := s.posts.FindBySlug(ctx, strings.TrimSpace(slug), true)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPostNotFound
		}
		return nil, err
	}
	post.ReadingTime = readingTime(post.Content)
	return post, nil
}

func (s *postService) ListAll(ctx context.Context) ([]model.Post, error) {
	return s.posts.List(ctx, repository.PostFilter{})
}

func (s *postService) Get(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) Create(ctx context.Context, input PostInput) (*model.Post, error) {
	post, err := s.buildPost(&model.Post{ID: uuid.New().String()}, input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, post.Slug, ""); err != nil {
		return nil, err
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	log.Info().Str("post_id", post.ID).Str("slug", post.Slug).Msg("post created")
	return post, nil
}

func (s *postService) Update(ctx context.Context, id string, input PostInput) (*model.Post, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	post, err := s.buildPost(existing, input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, post.Slug, post.ID); err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	log.Info().Str("post_id", post.ID).Msg("post updated")
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("post_id", id).Msg("post deleted")
	return nil
}

func (s *postService) buildPost(post *model.Post, input PostInput) (*model.Post, error) {
	title := sanitize.Text(input.Title, 255)
	if title == "" {
		return nil, errors.NewValidation("title is required")
	}
	content := sanitize.HTML(input.Content, 0)
	if strings.TrimSpace(content) == "" {
		return nil, errors.NewValidation("content is required")
	}

	slug := Slugify(input.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return nil, errors.NewValidation("a slug could not be derived from the title")
	}

	post.Title = title
	post.Slug = slug
	post.Excerpt = sanitize.Text(input.Excerpt, 500)
	post.Content = content
	post.Category = sanitize.Text(input.Category, 100)
	post.Author = sanitize.Name(input.Author)
	post.ImageURL = sanitize.URL(input.ImageURL)
	post.Tags = sanitize.List(input.Tags, 10, 50)
	post.IsPublished = input.IsPublished
	return post, nil
}

// ensureSlugFree rejects a slug already used by a different post.
func (s *postService) ensureSlugFree(ctx context.Context, slug, selfID string) error {
	existing, err := s.posts.FindBySlug(ctx, slug, false)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return errors.NewValidation("a post with this slug already exists")
	}
	return nil
}

// Slugify lowers, strips and hyphenates a title into a URL slug.
func Slugify(input string) string {
	slug := strings.ToLower(strings.TrimSpace(input))
	slug = slugInvalidRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func readingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + readingWordsPerMinute - 1) / readingWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
