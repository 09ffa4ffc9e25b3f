package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordEncoder hashes and verifies secrets with bcrypt.
type PasswordEncoder struct {
	cost int
}

// NewPasswordEncoder returns an encoder using cost, clamped to bcrypt's
// accepted range. A zero cost selects bcrypt.DefaultCost.
func NewPasswordEncoder(cost int) *PasswordEncoder {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &PasswordEncoder{cost: cost}
}

// Hash returns a salted bcrypt hash of plain.
func (e *PasswordEncoder) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), e.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plain matches storedHash. A malformed or empty
// hash never matches.
func (e *PasswordEncoder) Verify(plain, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plain)) == nil
}
