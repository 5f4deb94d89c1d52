package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shahadathhs/blogman/internal/domain"
	"github.com/shahadathhs/blogman/internal/repository"
)

const userColumns = `id, email, password, role, email_verified, google_id,
	verification_token, reset_token, reset_token_expiry,
	email_login_code, email_login_code_expiry, is_active, created_at, updated_at`

const profileColumns = `id, user_id, name, bio, avatar, website, location, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User, profileName string) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO users (email, password, role, verification_token, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		user.Email, user.Password, user.Role, user.VerificationToken, user.IsActive,
	)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	var name *string
	if profileName != "" {
		name = &profileName
	}
	profileRow := tx.QueryRow(ctx,
		`INSERT INTO profiles (user_id, name) VALUES ($1, $2)
		 RETURNING `+profileColumns,
		created.ID, name,
	)
	profile, err := scanProfile(profileRow)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	created.Profile = profile

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return created, nil
}

func (r *UserRepository) CreateFromGoogle(ctx context.Context, email, googleID string, name, avatar *string) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO users (email, role, email_verified, google_id, is_active)
		 VALUES ($1, $2, true, $3, true)
		 RETURNING `+userColumns,
		email, domain.RoleUser, googleID,
	)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert google user: %w", err)
	}

	profileRow := tx.QueryRow(ctx,
		`INSERT INTO profiles (user_id, name, avatar) VALUES ($1, $2, $3)
		 RETURNING `+profileColumns,
		created.ID, name, avatar,
	)
	profile, err := scanProfile(profileRow)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	created.Profile = profile

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, `u.id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `u.email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+joinedColumns+`
		 FROM users u
		 LEFT JOIN profiles p ON p.user_id = u.id
		 WHERE `+where,
		arg,
	)
	return scanUserWithProfile(row)
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+joinedColumns+`
		 FROM users u
		 LEFT JOIN profiles p ON p.user_id = u.id
		 ORDER BY u.created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUserWithProfile(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) ClaimVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users
		 SET email_verified = true, verification_token = NULL, updated_at = NOW()
		 WHERE verification_token = $1
		 RETURNING `+userColumns,
		token,
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET reset_token = $2, reset_token_expiry = $3, updated_at = NOW() WHERE id = $1`,
		userID, token, expiry,
	)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePasswordByResetToken(ctx context.Context, token, passwordHash string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users
		 SET password = $2, reset_token = NULL, reset_token_expiry = NULL, updated_at = NOW()
		 WHERE reset_token = $1 AND reset_token_expiry > NOW()
		 RETURNING `+userColumns,
		token, passwordHash,
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetLoginCode(ctx context.Context, userID, codeHash string, expiry time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET email_login_code = $2, email_login_code_expiry = $3, updated_at = NOW() WHERE id = $1`,
		userID, codeHash, expiry,
	)
	if err != nil {
		return fmt.Errorf("set login code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ConsumeLoginCode(ctx context.Context, userID, codeHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET email_login_code = NULL, email_login_code_expiry = NULL,
		     email_verified = true, updated_at = NOW()
		 WHERE id = $1 AND email_login_code = $2`,
		userID, codeHash,
	)
	if err != nil {
		return fmt.Errorf("consume login code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Another request claimed the code between validate and consume.
		return domain.ErrCodeInvalid
	}
	return nil
}

func (r *UserRepository) LinkGoogle(ctx context.Context, userID, googleID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET google_id = $2, email_verified = true, updated_at = NOW() WHERE id = $1`,
		userID, googleID,
	)
	if err != nil {
		return fmt.Errorf("link google: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID string, patch repository.ProfilePatch) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE profiles
		 SET name     = COALESCE($2, name),
		     bio      = COALESCE($3, bio),
		     avatar   = COALESCE($4, avatar),
		     website  = COALESCE($5, website),
		     location = COALESCE($6, location),
		     updated_at = NOW()
		 WHERE user_id = $1
		 RETURNING `+profileColumns,
		userID, patch.Name, patch.Bio, patch.Avatar, patch.Website, patch.Location,
	)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET is_active = false, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ClearExpiredCredentials(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET reset_token             = CASE WHEN reset_token_expiry <= $1 THEN NULL ELSE reset_token END,
		     reset_token_expiry      = CASE WHEN reset_token_expiry <= $1 THEN NULL ELSE reset_token_expiry END,
		     email_login_code        = CASE WHEN email_login_code_expiry <= $1 THEN NULL ELSE email_login_code END,
		     email_login_code_expiry = CASE WHEN email_login_code_expiry <= $1 THEN NULL ELSE email_login_code_expiry END
		 WHERE reset_token_expiry <= $1 OR email_login_code_expiry <= $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("clear expired credentials: %w", err)
	}
	return tag.RowsAffected(), nil
}

const joinedColumns = `u.id, u.email, u.password, u.role, u.email_verified, u.google_id,
	u.verification_token, u.reset_token, u.reset_token_expiry,
	u.email_login_code, u.email_login_code_expiry, u.is_active, u.created_at, u.updated_at,
	p.id, p.user_id, p.name, p.bio, p.avatar, p.website, p.location, p.created_at, p.updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.Role, &u.EmailVerified, &u.GoogleID,
		&u.VerificationToken, &u.ResetToken, &u.ResetTokenExpiry,
		&u.EmailLoginCode, &u.EmailLoginCodeExpiry, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func scanUserWithProfile(row pgx.Row) (*domain.User, error) {
	var (
		u domain.User
		p domain.Profile

		profileID, profileUserID           *string
		profileCreatedAt, profileUpdatedAt *time.Time
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.Role, &u.EmailVerified, &u.GoogleID,
		&u.VerificationToken, &u.ResetToken, &u.ResetTokenExpiry,
		&u.EmailLoginCode, &u.EmailLoginCodeExpiry, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		&profileID, &profileUserID, &p.Name, &p.Bio, &p.Avatar, &p.Website, &p.Location,
		&profileCreatedAt, &profileUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user with profile: %w", err)
	}
	if profileID != nil {
		p.ID = *profileID
		p.UserID = *profileUserID
		p.CreatedAt = *profileCreatedAt
		p.UpdatedAt = *profileUpdatedAt
		u.Profile = &p
	}
	return &u, nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Bio, &p.Avatar, &p.Website, &p.Location,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}
