package service

import (
	"context"

	"github.com/aturgenev/identity-api/models"
)

// UserService holds the business rules for the user lifecycle: creation,
// lookup, listing, deletion, moderation, and credential verification.
//
// Every user returned by this interface is sanitized: the credential hash is
// stripped before the value crosses the service boundary.
type UserService interface {
	CreateUser(ctx context.Context, username, password string) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	DeleteUserByID(ctx context.Context, userID int64) error
	BanUser(ctx context.Context, userID int64) error
	UnbanUser(ctx context.Context, userID int64) error
	GetUserBanStatus(ctx context.Context, userID int64) (bool, error)

	// AuthenticateUser verifies the credentials of an existing account.
	// Failure modes, in check order: store.ErrUserNotFound, ErrUserBanned,
	// ErrWrongPassword.
	AuthenticateUser(ctx context.Context, username, password string) (models.User, error)
}

// AuthService orchestrates registration, login, and token validation on top
// of the user directory and the token codec.
type AuthService interface {
	Register(ctx context.Context, username, password string) (models.User, error)

	// Login authenticates the credentials and, on success, issues a signed
	// token embedding the user's id, username, and roles.
	Login(ctx context.Context, username, password string) (models.Token, models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// ValidateToken re-fetches the live user state behind a token subject:
	// a token may still be cryptographically valid after the account was
	// deleted or banned.
	ValidateToken(ctx context.Context, userID int64) (models.User, error)

	// ValidateTokenWithUsername verifies the token and additionally checks
	// that its embedded username matches the supplied one before running
	// the live-state validation.
	ValidateTokenWithUsername(ctx context.Context, tokenString, username string) (models.User, error)
}
