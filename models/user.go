package models

import (
	"strings"
	"time"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes, the stored credential hash, and the
// account's moderation status. Sensitive fields must never be exposed outside
// trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user,
	// assigned by the database on creation. Zero before persistence.
	UserID int64 `json:"id"`

	// Username is the unique login identifier used during authentication.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is never serialized to JSON and must never appear in logs
	// or error payloads.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	// Set by the database, immutable afterwards.
	CreatedAt time.Time `json:"created_at"`

	// IsBanned reports whether the account has been banned by an
	// administrator. Banned accounts cannot log in or use issued tokens.
	IsBanned bool `json:"is_banned"`

	// Roles holds the names of all roles assigned to the user.
	// Every persisted user carries at least the "user" role.
	Roles []string `json:"roles"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Sanitized returns a copy of the user with the credential hash removed.
// This is the only projection of a user that may cross a response boundary.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// HasRole reports whether the user carries the given role name.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ValidUsername reports whether the username is non-empty after trimming.
func (u User) ValidUsername() bool {
	return strings.TrimSpace(u.Username) != ""
}
