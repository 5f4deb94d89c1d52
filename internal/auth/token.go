package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shahadathhs/blogman/internal/domain"
)

// TokenPurpose states what a signed token may be used for. Verification
// rejects a token presented for the wrong purpose, so a verification token
// can never pass as a session and vice versa.
type TokenPurpose string

const (
	PurposeSession       TokenPurpose = "session"
	PurposeEmailVerify   TokenPurpose = "email_verify"
	PurposePasswordReset TokenPurpose = "password_reset"
)

type Claims struct {
	Email   string       `json:"email"`
	Role    string       `json:"role,omitempty"`
	Purpose TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret     []byte
	sessionTTL time.Duration
}

func NewTokenIssuer(secret []byte, sessionTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, sessionTTL: sessionTTL}
}

// SignSession mints the bearer token returned after any successful login.
func (i *TokenIssuer) SignSession(userID, email string, role domain.Role) (string, error) {
	now := time.Now()
	return i.sign(Claims{
		Email:   email,
		Role:    string(role),
		Purpose: PurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.sessionTTL)),
		},
	})
}

// SignEmailVerification mints the single-use token mailed at registration.
// The subject is a fresh random id, not the pending user's id, and the token
// carries no expiry claim: it stays valid until the stored copy is consumed.
func (i *TokenIssuer) SignEmailVerification(email string) (string, error) {
	return i.sign(Claims{
		Email:   email,
		Purpose: PurposeEmailVerify,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
}

// SignPasswordReset mints a reset token. Its validity window is enforced by
// the stored reset_token_expiry column, not by an expiry claim.
func (i *TokenIssuer) SignPasswordReset(userID, email string, role domain.Role) (string, error) {
	return i.sign(Claims{
		Email:   email,
		Role:    string(role),
		Purpose: PurposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
}

func (i *TokenIssuer) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes the token, checks the signature and any expiry claim, and
// rejects a purpose mismatch. All failures collapse into ErrTokenInvalid so
// callers cannot distinguish "malformed" from "wrong".
func (i *TokenIssuer) Verify(raw string, purpose TokenPurpose) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid || claims.Purpose != purpose {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
