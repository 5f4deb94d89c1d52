package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shahadathhs/blogman/internal/domain"
	"github.com/shahadathhs/blogman/internal/repository"
	"github.com/shahadathhs/blogman/internal/usecase"
)

func TestListUsers_BoundsPagination(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		limit      int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", page: 0, limit: 0, wantLimit: 20, wantOffset: 0},
		{name: "second page", page: 2, limit: 10, wantLimit: 10, wantOffset: 10},
		{name: "capped limit", page: 1, limit: 500, wantLimit: 100, wantOffset: 0},
		{name: "negative page", page: -3, limit: 10, wantLimit: 10, wantOffset: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotLimit, gotOffset int
			repo := &fakeUserRepo{
				list: func(_ context.Context, limit, offset int) ([]*domain.User, error) {
					gotLimit, gotOffset = limit, offset
					return nil, nil
				},
			}

			if _, err := usecase.NewUserUsecase(repo).ListUsers(context.Background(), tc.page, tc.limit); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotLimit != tc.wantLimit || gotOffset != tc.wantOffset {
				t.Errorf("limit/offset = %d/%d, want %d/%d", gotLimit, gotOffset, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}

func TestUpdateProfile_PatchReachesRepo(t *testing.T) {
	var captured repository.ProfilePatch
	repo := &fakeUserRepo{
		updateProfile: func(_ context.Context, _ string, patch repository.ProfilePatch) (*domain.Profile, error) {
			captured = patch
			return &domain.Profile{UserID: "user-1"}, nil
		},
	}

	bio := "Writes about Go."
	if _, err := usecase.NewUserUsecase(repo).UpdateProfile(context.Background(), "user-1", repository.ProfilePatch{Bio: &bio}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Bio == nil || *captured.Bio != bio {
		t.Error("bio patch did not reach the repository")
	}
	if captured.Name != nil {
		t.Error("unset fields should stay nil")
	}
}

func TestDeactivateUser_MissingUser(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
		deactivate: func(context.Context, string) error {
			t.Fatal("deactivate ran for a missing user")
			return nil
		},
	}

	err := usecase.NewUserUsecase(repo).DeactivateUser(context.Background(), "nope")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestDeactivateUser_FlipsExistingUser(t *testing.T) {
	deactivated := false
	repo := &fakeUserRepo{
		findByID: func(context.Context, string) (*domain.User, error) {
			return &domain.User{ID: "user-1", IsActive: true}, nil
		},
		deactivate: func(_ context.Context, id string) error {
			if id != "user-1" {
				t.Errorf("id = %q, want user-1", id)
			}
			deactivated = true
			return nil
		},
	}

	if err := usecase.NewUserUsecase(repo).DeactivateUser(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deactivated {
		t.Error("user not deactivated")
	}
}
