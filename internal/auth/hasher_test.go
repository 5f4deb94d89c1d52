package auth_test

import (
	"testing"

	"github.com/shahadathhs/blogman/internal/auth"
)

func TestHashSecret_NeverStoresPlaintext(t *testing.T) {
	const plaintext = "secret1"

	hash, err := auth.HashSecret(plaintext)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == plaintext {
		t.Fatal("hash equals the plaintext")
	}
	if !auth.VerifySecret(plaintext, hash) {
		t.Error("verify(plaintext, hash) = false, want true")
	}
}

func TestVerifySecret_WrongSecret(t *testing.T) {
	hash, err := auth.HashSecret("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.VerifySecret("secret2", hash) {
		t.Error("verify accepted the wrong secret")
	}
}

func TestVerifySecret_MalformedHash(t *testing.T) {
	if auth.VerifySecret("secret1", "not-a-bcrypt-hash") {
		t.Error("verify accepted a malformed hash")
	}
}
