package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shahadathhs/blogman/internal/auth"
	"github.com/shahadathhs/blogman/internal/domain"
	"github.com/shahadathhs/blogman/internal/email"
	"github.com/shahadathhs/blogman/internal/metrics"
	"github.com/shahadathhs/blogman/internal/repository"
)

const (
	resetTokenTTL = 15 * time.Minute
	loginCodeTTL  = 15 * time.Minute
)

func recordEmail(kind string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	metrics.EmailsSentTotal.WithLabelValues(kind, outcome).Inc()
}

type AuthUsecase struct {
	users         repository.UserRepository
	email         email.Sender
	tokens        *auth.TokenIssuer
	google        auth.GoogleVerifier
	verifyURLBase string
	resetURLBase  string
	logger        *slog.Logger
}

func NewAuthUsecase(
	users repository.UserRepository,
	emailSender email.Sender,
	tokens *auth.TokenIssuer,
	google auth.GoogleVerifier,
	verifyURLBase, resetURLBase string,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:         users,
		email:         emailSender,
		tokens:        tokens,
		google:        google,
		verifyURLBase: verifyURLBase,
		resetURLBase:  resetURLBase,
		logger:        logger.With("component", "auth_usecase"),
	}
}

// AuthResult pairs the acting user with a freshly minted session token.
type AuthResult struct {
	User  *domain.User
	Token string
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register hashes the password, mints a verification token, and creates the
// user with an empty profile. The verification email is sent after the
// commit; a delivery failure is logged but does not fail the registration.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	passwordHash, err := auth.HashSecret(input.Password)
	if err != nil {
		return nil, err
	}

	verificationToken, err := u.tokens.SignEmailVerification(input.Email)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:             input.Email,
		Password:          &passwordHash,
		Role:              domain.RoleUser,
		VerificationToken: &verificationToken,
		IsActive:          true,
	}

	created, err := u.users.Create(ctx, user, input.Name)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	link := u.verifyURLBase + "?token=" + verificationToken
	body := fmt.Sprintf(
		`<h3>Welcome!</h3><p>Please verify your email by clicking the link below:</p><p><a href="%s">Verify Email</a></p>`,
		link,
	)
	err = u.email.Send(ctx, input.Email, "Email Verification", body)
	recordEmail("verification", err)
	if err != nil {
		u.logger.ErrorContext(ctx, "send verification email", "error", err)
	}

	return created, nil
}

// VerifyEmail consumes a verification token. The claim is a single
// conditional update, so a token only ever verifies one request.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrTokenInvalid
	}

	if _, err := u.users.ClaimVerificationToken(ctx, token); err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("claim verification token: %w", err)
	}
	return nil
}

func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	if user.Password == nil {
		return nil, domain.ErrPasswordRequired
	}
	if !auth.VerifySecret(password, *user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := u.tokens.SignSession(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// ForgotPassword stores a time-boxed reset token and mails the reset link.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	resetToken, err := u.tokens.SignPasswordReset(user.ID, user.Email, user.Role)
	if err != nil {
		return err
	}

	expiry := time.Now().Add(resetTokenTTL)
	if err := u.users.SetResetToken(ctx, user.ID, resetToken, expiry); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := u.resetURLBase + "?token=" + resetToken
	body := fmt.Sprintf(
		`<h3>Password Reset</h3><p>Reset your password by visiting the link below (expires in 15 minutes):</p><p><a href="%s">Reset password</a></p>`,
		link,
	)
	err = u.email.Send(ctx, user.Email, "Password Reset", body)
	recordEmail("reset", err)
	if err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// SetNewPassword claims the reset token and swaps the password in one
// conditional update: the token must still match and must not have expired.
func (u *AuthUsecase) SetNewPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrTokenInvalid
	}

	passwordHash, err := auth.HashSecret(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.users.UpdatePasswordByResetToken(ctx, token, passwordHash); err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("update password by reset token: %w", err)
	}
	return nil
}

// ResetPassword is the authenticated variant: the caller proves the current
// password and supplies a different new one.
func (u *AuthUsecase) ResetPassword(ctx context.Context, emailAddr, currentPassword, newPassword string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	if user.Password == nil {
		return domain.ErrPasswordRequired
	}
	if !auth.VerifySecret(currentPassword, *user.Password) {
		return domain.ErrInvalidCredentials
	}
	if currentPassword == newPassword {
		return domain.ErrSamePassword
	}

	passwordHash, err := auth.HashSecret(newPassword)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// GoogleLogin verifies the ID token, then finds, links, or creates the
// account. The returned bool reports whether a new user was created.
func (u *AuthUsecase) GoogleLogin(ctx context.Context, rawIDToken string) (*AuthResult, bool, error) {
	if rawIDToken == "" {
		return nil, false, domain.ErrTokenInvalid
	}

	identity, err := u.google.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, false, domain.ErrTokenInvalid
	}

	var created bool
	user, err := u.users.FindByEmail(ctx, identity.Email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		user, err = u.users.CreateFromGoogle(ctx, identity.Email, identity.Sub, identity.Name, identity.Picture)
		if err != nil {
			return nil, false, fmt.Errorf("create google user: %w", err)
		}
		created = true
	case err != nil:
		return nil, false, err
	case user.GoogleID == nil:
		// Existing password account: link the Google identity to it.
		if err := u.users.LinkGoogle(ctx, user.ID, identity.Sub); err != nil {
			return nil, false, fmt.Errorf("link google identity: %w", err)
		}
		user.GoogleID = &identity.Sub
		user.EmailVerified = true
	}

	token, err := u.tokens.SignSession(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, false, err
	}
	return &AuthResult{User: user, Token: token}, created, nil
}

// SendLoginCode generates a one-time 6-digit code, stores its hash with a
// 15-minute expiry, and emails the plaintext code.
func (u *AuthUsecase) SendLoginCode(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	code, codeHash, err := auth.GenerateLoginCode()
	if err != nil {
		return err
	}

	expiry := time.Now().Add(loginCodeTTL)
	if err := u.users.SetLoginCode(ctx, user.ID, codeHash, expiry); err != nil {
		return fmt.Errorf("store login code: %w", err)
	}

	body := fmt.Sprintf(
		`<h3>Your login code</h3><p>Enter this code to sign in (expires in 15 minutes):</p><p><b>%s</b></p>`,
		code,
	)
	err = u.email.Send(ctx, user.Email, "Your login code", body)
	recordEmail("login_code", err)
	if err != nil {
		return fmt.Errorf("send login code: %w", err)
	}
	return nil
}

// VerifyLoginCode validates the code against the stored hash and expiry,
// consumes it, marks the email verified, and mints a session token.
func (u *AuthUsecase) VerifyLoginCode(ctx context.Context, emailAddr, code string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	if user.EmailLoginCode == nil || user.EmailLoginCodeExpiry == nil {
		return nil, domain.ErrCodeInvalid
	}
	if err := auth.ValidateLoginCode(code, *user.EmailLoginCode, *user.EmailLoginCodeExpiry, time.Now()); err != nil {
		return nil, err
	}

	// Conditional on the stored hash, so concurrent submissions cannot both
	// consume the same code.
	if err := u.users.ConsumeLoginCode(ctx, user.ID, *user.EmailLoginCode); err != nil {
		return nil, err
	}
	user.EmailVerified = true
	user.EmailLoginCode = nil
	user.EmailLoginCodeExpiry = nil

	token, err := u.tokens.SignSession(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}
