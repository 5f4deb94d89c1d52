package usecase

import (
	"context"
	"fmt"

	"github.com/shahadathhs/blogman/internal/domain"
	"github.com/shahadathhs/blogman/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type UserUsecase struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) ListUsers(ctx context.Context, page, limit int) ([]*domain.User, error) {
	limit, offset := pageBounds(page, limit)
	users, err := u.users.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (u *UserUsecase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return u.users.FindByID(ctx, id)
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return u.users.FindByID(ctx, userID)
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, userID string, patch repository.ProfilePatch) (*domain.Profile, error) {
	profile, err := u.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// DeactivateUser soft-deletes: the row stays, is_active flips to false.
func (u *UserUsecase) DeactivateUser(ctx context.Context, id string) error {
	if _, err := u.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := u.users.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	return nil
}

func pageBounds(page, limit int) (boundedLimit, offset int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}
