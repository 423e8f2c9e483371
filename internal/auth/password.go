// Package auth guards the private space with a single shared password.
//
// The configured password is hashed with bcrypt once at startup and the
// plaintext is not retained. Inputs are reduced to a SHA-256 hex digest
// before bcrypt sees them, which keeps every byte of a long password
// significant. Each check compares the candidate against that
// hash, so response time does not depend on how much of the guess is right.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used outside of tests.
const DefaultCost = bcrypt.DefaultCost

// Gate answers whether a candidate matches the shared password.
type Gate struct {
	hash []byte
}

// NewGate hashes secret at the given bcrypt cost. Pass DefaultCost in
// production; tests use bcrypt.MinCost.
func NewGate(secret string, cost int) (*Gate, error) {
	if secret == "" {
		return nil, errors.New("auth: password must not be empty")
	}

	hashed, err := bcrypt.GenerateFromPassword(digest(secret), cost)
	if err != nil {
		return nil, fmt.Errorf("auth: hashing password: %w", err)
	}
	return &Gate{hash: hashed}, nil
}

// Allows reports whether candidate equals the shared password.
func (g *Gate) Allows(candidate string) (bool, error) {
	if candidate == "" {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword(g.hash, digest(candidate))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("auth: comparing password hash: %w", err)
	}
}

// digest is 64 bytes, under bcrypt's 72-byte input limit.
func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}
