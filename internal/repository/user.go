package repository

import (
	"context"
	"time"

	"github.com/shahadathhs/blogman/internal/domain"
)

type ProfilePatch struct {
	Name     *string
	Bio      *string
	Avatar   *string
	Website  *string
	Location *string
}

type UserRepository interface {
	// Create inserts the user and an empty profile (seeded with name) in one
	// transaction. Returns domain.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *domain.User, profileName string) (*domain.User, error)

	// CreateFromGoogle inserts a verified, passwordless user linked to a
	// Google identity, with a profile seeded from the ID-token claims.
	CreateFromGoogle(ctx context.Context, email, googleID string, name, avatar *string) (*domain.User, error)

	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)

	// ClaimVerificationToken marks the matching user verified and clears the
	// token in a single statement. Returns domain.ErrTokenInvalid when no row
	// matches (wrong token, or already consumed).
	ClaimVerificationToken(ctx context.Context, token string) (*domain.User, error)

	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error

	// UpdatePasswordByResetToken sets the password and clears the reset pair
	// only if the token still matches and has not expired. Returns
	// domain.ErrTokenInvalid when no row matches.
	UpdatePasswordByResetToken(ctx context.Context, token, passwordHash string) (*domain.User, error)

	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	SetLoginCode(ctx context.Context, userID, codeHash string, expiry time.Time) error

	// ConsumeLoginCode clears the code pair and marks the email verified,
	// conditioned on the stored hash still being the one that was validated.
	// Returns domain.ErrCodeInvalid when another request consumed it first.
	ConsumeLoginCode(ctx context.Context, userID, codeHash string) error

	// LinkGoogle attaches a Google identity to an existing account and marks
	// the email verified.
	LinkGoogle(ctx context.Context, userID, googleID string) error

	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*domain.Profile, error)
	Deactivate(ctx context.Context, id string) error

	// ClearExpiredCredentials nulls out reset tokens and login codes whose
	// expiry has passed. Returns the number of rows touched.
	ClearExpiredCredentials(ctx context.Context, now time.Time) (int64, error)
}
