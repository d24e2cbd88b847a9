package repository

import (
	"context"

	"gorm.io/gorm"

	"foundation/internal/model"
)

// PostFilter narrows public blog listings.
type PostFilter struct {
	Category      string
	Tag           string
	PublishedOnly bool
}

// PostRepository defines persistence operations for blog posts.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Post, error)
	List(ctx context.Context, filter PostFilter) ([]model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, "id = ?", id).Error
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Post, error) {
	query := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	var post model.Post
	if err := query.First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]model.Post, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var posts []model.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}

	// Tag filtering happens after the query: tags live in a JSON column.
	if filter.Tag == "" {
		return posts, nil
	}
	filtered := posts[:0]
	for _, post := range posts {
		for _, tag := range post.Tags {
			if tag == filter.Tag {
				filtered = append(filtered, post)
				break
			}
		}
	}
	return filtered, nil
}
