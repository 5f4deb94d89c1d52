package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shahadathhs/blogman/internal/domain"
	"github.com/shahadathhs/blogman/internal/repository"
)

type BlogUsecase struct {
	blogs repository.BlogRepository
}

func NewBlogUsecase(blogs repository.BlogRepository) *BlogUsecase {
	return &BlogUsecase{blogs: blogs}
}

type CreateBlogInput struct {
	Title     string
	Content   string
	Slug      string
	Published bool
	TagIDs    []string
}

func (u *BlogUsecase) CreateBlog(ctx context.Context, authorID string, input CreateBlogInput) (*domain.Blog, error) {
	blog := &domain.Blog{
		Title:     input.Title,
		Content:   input.Content,
		Slug:      input.Slug,
		Published: input.Published,
		AuthorID:  authorID,
	}

	created, err := u.blogs.Create(ctx, blog, input.TagIDs)
	if err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return created, nil
}

type ListBlogsInput struct {
	Page      int
	Limit     int
	Published *bool
	TagSlug   string
	AuthorID  string
}

func (u *BlogUsecase) ListBlogs(ctx context.Context, input ListBlogsInput) ([]*domain.Blog, error) {
	limit, offset := pageBounds(input.Page, input.Limit)
	blogs, err := u.blogs.List(ctx, repository.BlogFilter{
		Published: input.Published,
		TagSlug:   input.TagSlug,
		AuthorID:  input.AuthorID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

// GetBlog accepts either the blog id or its slug.
func (u *BlogUsecase) GetBlog(ctx context.Context, idOrSlug string) (*domain.Blog, error) {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		return u.blogs.FindByID(ctx, idOrSlug)
	}
	return u.blogs.FindBySlug(ctx, idOrSlug)
}

type UpdateBlogInput struct {
	Title     *string
	Content   *string
	Slug      *string
	Published *bool
	TagIDs    []string // nil keeps the current tag set
}

// UpdateBlog is restricted to the author and admins.
func (u *BlogUsecase) UpdateBlog(ctx context.Context, id, actorID string, actorRole domain.Role, input UpdateBlogInput) (*domain.Blog, error) {
	blog, err := u.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != actorID && actorRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		blog.Title = *input.Title
	}
	if input.Content != nil {
		blog.Content = *input.Content
	}
	if input.Slug != nil {
		blog.Slug = *input.Slug
	}
	if input.Published != nil {
		blog.Published = *input.Published
	}

	updated, err := u.blogs.Update(ctx, blog, input.TagIDs)
	if err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return updated, nil
}

// TogglePublish flips the published flag, restricted to the author and
// admins. Returns the blog with its new state.
func (u *BlogUsecase) TogglePublish(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.Blog, error) {
	blog, err := u.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != actorID && actorRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	blog.Published = !blog.Published
	updated, err := u.blogs.Update(ctx, blog, nil)
	if err != nil {
		return nil, fmt.Errorf("toggle publish: %w", err)
	}
	return updated, nil
}

// DeleteBlog is restricted to the author and admins. The blog row is hard
// deleted and its tag links cascade.
func (u *BlogUsecase) DeleteBlog(ctx context.Context, id, actorID string, actorRole domain.Role) error {
	blog, err := u.blogs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if blog.AuthorID != actorID && actorRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := u.blogs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}
