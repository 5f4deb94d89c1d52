package repository

import (
	"context"

	"github.com/shahadathhs/blogman/internal/domain"
)

type BlogFilter struct {
	Published *bool
	TagSlug   string
	AuthorID  string
	Limit     int
	Offset    int
}

type BlogRepository interface {
	// Create inserts the blog and its tag links. Returns domain.ErrSlugTaken
	// on a duplicate slug.
	Create(ctx context.Context, blog *domain.Blog, tagIDs []string) (*domain.Blog, error)

	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	List(ctx context.Context, filter BlogFilter) ([]*domain.Blog, error)

	// Update persists title/content/slug/published. A non-nil tagIDs replaces
	// the tag set; nil leaves it untouched.
	Update(ctx context.Context, blog *domain.Blog, tagIDs []string) (*domain.Blog, error)

	Delete(ctx context.Context, id string) error
}
