package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shahadathhs/blogman/internal/auth"
	"github.com/shahadathhs/blogman/internal/domain"
)

const testSecret = "token-test-secret-at-least-32-chars!!"

func newIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer([]byte(testSecret), time.Hour)
}

func TestSignSession_RoundTrip(t *testing.T) {
	issuer := newIssuer()

	signed, err := issuer.SignSession("user-1", "a@x.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.Verify(signed, auth.PurposeSession)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("sub = %q, want %q", claims.Subject, "user-1")
	}
	if claims.Email != "a@x.com" {
		t.Errorf("email = %q, want %q", claims.Email, "a@x.com")
	}
	if claims.Role != string(domain.RoleAdmin) {
		t.Errorf("role = %q, want %q", claims.Role, domain.RoleAdmin)
	}
}

func TestVerify_RejectsWrongPurpose(t *testing.T) {
	issuer := newIssuer()

	verification, err := issuer.SignEmailVerification("a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := issuer.Verify(verification, auth.PurposeSession); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("verification token accepted as session, err = %v", err)
	}
	if _, err := issuer.Verify(verification, auth.PurposeEmailVerify); err != nil {
		t.Errorf("verification token rejected for its own purpose: %v", err)
	}
}

func TestVerify_RejectsTamperedToken(t *testing.T) {
	issuer := newIssuer()

	signed, err := issuer.SignSession("user-1", "a@x.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tampered := signed[:len(signed)-2] + "xx"
	if _, err := issuer.Verify(tampered, auth.PurposeSession); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("tampered token accepted, err = %v", err)
	}
}

func TestVerify_RejectsWrongKey(t *testing.T) {
	signed, err := newIssuer().SignSession("user-1", "a@x.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := auth.NewTokenIssuer([]byte("another-secret-also-32-chars-long!!!"), time.Hour)
	if _, err := other.Verify(signed, auth.PurposeSession); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("token signed with a different key accepted, err = %v", err)
	}
}

func TestVerify_RejectsExpiredSession(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte(testSecret), -time.Minute)

	signed, err := issuer.SignSession("user-1", "a@x.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := issuer.Verify(signed, auth.PurposeSession); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expired session accepted, err = %v", err)
	}
}

func TestSignEmailVerification_SubjectIsRandom(t *testing.T) {
	issuer := newIssuer()

	first, err := issuer.SignEmailVerification("a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := issuer.SignEmailVerification("a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c1, err := issuer.Verify(first, auth.PurposeEmailVerify)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	c2, err := issuer.Verify(second, auth.PurposeEmailVerify)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if c1.Subject == c2.Subject {
		t.Error("two verification tokens share the same subject")
	}
}
