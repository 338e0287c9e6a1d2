package utils

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor applied when the configured cost is
// zero or outside the range bcrypt accepts.
const DefaultBcryptCost = 10

// ErrEmptyPassword is returned when an empty or whitespace-only password is
// passed to HashPassword.
var ErrEmptyPassword = errors.New("password must be a non-empty string")

// HashPassword derives a salted bcrypt hash from the given plaintext password.
//
// The cost parameter controls the bcrypt work factor; values outside the
// range accepted by bcrypt fall back to [DefaultBcryptCost].
//
// Returns:
//   - [ErrEmptyPassword] if password is empty after trimming.
//   - A wrapped bcrypt error if hash generation fails.
func HashPassword(password string, cost int) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error generating password hash: %w", err)
	}

	return string(hashed), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
//
// A mismatch is not an error: the function returns (false, nil). A non-nil
// error is returned only for internal failures, e.g. a malformed stored hash.
// bcrypt performs a constant-time comparison internally, so no length or
// prefix information leaks through timing.
func VerifyPassword(password, hashedPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, fmt.Errorf("error comparing password with hash: %w", err)
}
