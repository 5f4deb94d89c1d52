package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shahadathhs/blogman/internal/domain"
	"github.com/shahadathhs/blogman/internal/repository"
)

type TagUsecase struct {
	tags repository.TagRepository
}

func NewTagUsecase(tags repository.TagRepository) *TagUsecase {
	return &TagUsecase{tags: tags}
}

func (u *TagUsecase) CreateTag(ctx context.Context, name, slug string) (*domain.Tag, error) {
	created, err := u.tags.Create(ctx, &domain.Tag{Name: name, Slug: slug})
	if err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return created, nil
}

func (u *TagUsecase) ListTags(ctx context.Context, page, limit int) ([]*domain.Tag, error) {
	limit, offset := pageBounds(page, limit)
	tags, err := u.tags.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (u *TagUsecase) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	return u.tags.FindByID(ctx, id)
}

func (u *TagUsecase) SearchTags(ctx context.Context, term string) ([]*domain.Tag, error) {
	tags, err := u.tags.Search(ctx, term, defaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("search tags: %w", err)
	}
	return tags, nil
}

type UpdateTagInput struct {
	Name *string
	Slug *string
}

func (u *TagUsecase) UpdateTag(ctx context.Context, id string, input UpdateTagInput) (*domain.Tag, error) {
	tag, err := u.tags.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tag.Name = *input.Name
	}
	if input.Slug != nil {
		tag.Slug = *input.Slug
	}

	updated, err := u.tags.Update(ctx, tag)
	if err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return updated, nil
}

func (u *TagUsecase) DeleteTag(ctx context.Context, id string) error {
	if _, err := u.tags.FindByID(ctx, id); err != nil {
		return err
	}
	if err := u.tags.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
