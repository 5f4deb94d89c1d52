package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahadathhs/blogman/internal/domain"
)

func newUserTestFixture(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewUserRepository(mock)
	return repo, mock
}

func sampleUser() *domain.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	hash := "$2a$10$samplesamplesamplesample"
	return &domain.User{
		ID:            "11111111-1111-1111-1111-111111111111",
		Email:         "alice@example.com",
		Password:      &hash,
		Role:          domain.RoleUser,
		EmailVerified: true,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// userRow builds the 14 columns scanned by scanUser.
func userRow(u *domain.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "email", "password", "role", "email_verified", "google_id",
		"verification_token", "reset_token", "reset_token_expiry",
		"email_login_code", "email_login_code_expiry", "is_active", "created_at", "updated_at",
	}).AddRow(
		u.ID, u.Email, u.Password, u.Role, u.EmailVerified, u.GoogleID,
		u.VerificationToken, u.ResetToken, u.ResetTokenExpiry,
		u.EmailLoginCode, u.EmailLoginCodeExpiry, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
}

// joinedRow builds the 23 columns scanned by scanUserWithProfile.
func joinedRow(u *domain.User, p *domain.Profile) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "email", "password", "role", "email_verified", "google_id",
		"verification_token", "reset_token", "reset_token_expiry",
		"email_login_code", "email_login_code_expiry", "is_active", "created_at", "updated_at",
		"p_id", "p_user_id", "p_name", "p_bio", "p_avatar", "p_website", "p_location",
		"p_created_at", "p_updated_at",
	})
	if p == nil {
		return rows.AddRow(
			u.ID, u.Email, u.Password, u.Role, u.EmailVerified, u.GoogleID,
			u.VerificationToken, u.ResetToken, u.ResetTokenExpiry,
			u.EmailLoginCode, u.EmailLoginCodeExpiry, u.IsActive, u.CreatedAt, u.UpdatedAt,
			nil, nil, nil, nil, nil, nil, nil, nil, nil,
		)
	}
	return rows.AddRow(
		u.ID, u.Email, u.Password, u.Role, u.EmailVerified, u.GoogleID,
		u.VerificationToken, u.ResetToken, u.ResetTokenExpiry,
		u.EmailLoginCode, u.EmailLoginCodeExpiry, u.IsActive, u.CreatedAt, u.UpdatedAt,
		&p.ID, &p.UserID, p.Name, p.Bio, p.Avatar, p.Website, p.Location,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	u := sampleUser()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(u.Email, u.Password, u.Role, u.VerificationToken, u.IsActive).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	got, err := repo.Create(context.Background(), u, "Alice")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_InsertsUserAndProfileInOneTx(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	u := sampleUser()
	now := u.CreatedAt
	name := "Alice"
	profile := &domain.Profile{
		ID:        "22222222-2222-2222-2222-222222222222",
		UserID:    u.ID,
		Name:      &name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(u.Email, u.Password, u.Role, u.VerificationToken, u.IsActive).
		WillReturnRows(userRow(u))
	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs(u.ID, &name).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "name", "bio", "avatar", "website", "location",
			"created_at", "updated_at",
		}).AddRow(
			profile.ID, profile.UserID, profile.Name, profile.Bio, profile.Avatar,
			profile.Website, profile.Location, profile.CreatedAt, profile.UpdatedAt,
		))
	mock.ExpectCommit()

	got, err := repo.Create(context.Background(), u, name)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	require.NotNil(t, got.Profile)
	assert.Equal(t, profile.ID, got.Profile.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_JoinsProfile(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	u := sampleUser()
	name := "Alice"
	profile := &domain.Profile{
		ID:        "22222222-2222-2222-2222-222222222222",
		UserID:    u.ID,
		Name:      &name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}

	mock.ExpectQuery("SELECT .+ FROM users u").
		WithArgs(u.Email).
		WillReturnRows(joinedRow(u, profile))

	got, err := repo.FindByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	require.NotNil(t, got.Profile)
	assert.Equal(t, profile.ID, got.Profile.ID)
	require.NotNil(t, got.Profile.Name)
	assert.Equal(t, name, *got.Profile.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_MissingProfileLeavesNil(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	u := sampleUser()

	mock.ExpectQuery("SELECT .+ FROM users u").
		WithArgs(u.Email).
		WillReturnRows(joinedRow(u, nil))

	got, err := repo.FindByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Nil(t, got.Profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM users u").
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ClaimVerificationToken_ConsumedToken(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE users").
		WithArgs("already-used").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.ClaimVerificationToken(context.Background(), "already-used")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePasswordByResetToken_StaleToken(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	// The conditional update matches no row when the token expired or was
	// already consumed.
	mock.ExpectQuery("UPDATE users").
		WithArgs("stale-token", "new-hash").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.UpdatePasswordByResetToken(context.Background(), "stale-token", "new-hash")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ConsumeLoginCode_RacedCode(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("user-1", "code-hash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.ConsumeLoginCode(context.Background(), "user-1", "code-hash")
	assert.ErrorIs(t, err, domain.ErrCodeInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ConsumeLoginCode_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("user-1", "code-hash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.ConsumeLoginCode(context.Background(), "user-1", "code-hash")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ClearExpiredCredentials_ReportsRowCount(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectExec("UPDATE users").
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	cleared, err := repo.ClearExpiredCredentials(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cleared)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Deactivate_MissingUser(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("missing-id").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Deactivate(context.Background(), "missing-id")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
