package repository

import (
	"context"

	"github.com/shahadathhs/blogman/internal/domain"
)

type TagRepository interface {
	// Create returns domain.ErrSlugTaken on a duplicate slug.
	Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error)

	FindByID(ctx context.Context, id string) (*domain.Tag, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Tag, error)
	Search(ctx context.Context, term string, limit int) ([]*domain.Tag, error)
	Update(ctx context.Context, tag *domain.Tag) (*domain.Tag, error)
	Delete(ctx context.Context, id string) error
}
