package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/shahadathhs/blogman/internal/domain"
)

const (
	loginCodeMin   = 100000
	loginCodeRange = 900000
)

// GenerateLoginCode produces a uniformly random 6-digit code and its bcrypt
// hash. Only the hash is stored; the plaintext goes out by email once.
func GenerateLoginCode() (code, codeHash string, err error) {
	n, err := rand.Int(rand.Reader, big.NewInt(loginCodeRange))
	if err != nil {
		return "", "", fmt.Errorf("generate login code: %w", err)
	}

	code = fmt.Sprintf("%06d", loginCodeMin+n.Int64())
	codeHash, err = HashSecret(code)
	if err != nil {
		return "", "", err
	}
	return code, codeHash, nil
}

// ValidateLoginCode checks expiry before the hash compare, so an expired
// code fails with ErrCodeExpired even when the digits match.
func ValidateLoginCode(input, storedHash string, expiry time.Time, now time.Time) error {
	if !expiry.After(now) {
		return domain.ErrCodeExpired
	}
	if !VerifySecret(input, storedHash) {
		return domain.ErrCodeInvalid
	}
	return nil
}
