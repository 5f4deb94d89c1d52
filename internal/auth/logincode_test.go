package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shahadathhs/blogman/internal/auth"
	"github.com/shahadathhs/blogman/internal/domain"
)

func TestGenerateLoginCode_SixDigits(t *testing.T) {
	for range 20 {
		code, hash, err := auth.GenerateLoginCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains a non-digit", code)
			}
		}
		if !auth.VerifySecret(code, hash) {
			t.Fatal("hash does not verify against the generated code")
		}
	}
}

func TestValidateLoginCode_Success(t *testing.T) {
	code, hash, err := auth.GenerateLoginCode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Now()
	if err := auth.ValidateLoginCode(code, hash, now.Add(15*time.Minute), now); err != nil {
		t.Errorf("valid code rejected: %v", err)
	}
}

func TestValidateLoginCode_Expired(t *testing.T) {
	code, hash, err := auth.GenerateLoginCode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Now()
	err = auth.ValidateLoginCode(code, hash, now.Add(-time.Second), now)
	if !errors.Is(err, domain.ErrCodeExpired) {
		t.Errorf("want ErrCodeExpired for a matching but expired code, got %v", err)
	}
}

func TestValidateLoginCode_WrongCode(t *testing.T) {
	code, hash, err := auth.GenerateLoginCode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	now := time.Now()
	err = auth.ValidateLoginCode(wrong, hash, now.Add(15*time.Minute), now)
	if !errors.Is(err, domain.ErrCodeInvalid) {
		t.Errorf("want ErrCodeInvalid, got %v", err)
	}
}
