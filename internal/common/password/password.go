// Package password checks the shared reset credential against a bcrypt hash.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyHash is returned when no credential hash is configured
var ErrEmptyHash = errors.New("credential hash cannot be empty")

// Verifier checks a plaintext credential
type Verifier interface {
	Verify(plain string) bool
}

// BcryptVerifier verifies against a single bcrypt hash
type BcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier creates a verifier for the given hash
func NewBcryptVerifier(hash string) (*BcryptVerifier, error) {
	if hash == "" {
		return nil, ErrEmptyHash
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid credential hash: %w", err)
	}
	return &BcryptVerifier{hash: []byte(hash)}, nil
}

// Verify reports whether plain matches the hash
func (v *BcryptVerifier) Verify(plain string) bool {
	if plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(plain)) == nil
}

// Hash returns a bcrypt hash of plain suitable for RESET_PASSWORD_HASH
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("credential cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}
	return string(hash), nil
}

// Deny is a Verifier that rejects everything. It is used when no reset
// credential is configured.
type Deny struct{}

// Verify always returns false
func (Deny) Verify(string) bool {
	return false
}
