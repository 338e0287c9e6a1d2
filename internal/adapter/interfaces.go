// Package adapter provides transport-layer abstractions for communicating
// with the identity-api server.
//
// The primary abstraction is [ServerAdapter], which decouples callers (such
// as the admin CLI) from the underlying protocol. The package ships an
// HTTP/REST implementation built on resty ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/aturgenev/identity-api/models"
)

// ServerAdapter defines transport-agnostic communication with the
// identity-api server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or
	// an empty string if no token has been set yet.
	Token() string

	// Register creates a new account and returns the sanitized user record.
	// Registration issues no token; call Login afterwards.
	Register(ctx context.Context, username, password string) (models.User, error)

	// Login authenticates the credentials. On success it stores the
	// returned bearer token via SetToken and returns the user record.
	Login(ctx context.Context, username, password string) (models.User, error)

	// ValidateToken asks the server whether the stored token is still valid
	// and belongs to username.
	ValidateToken(ctx context.Context, username string) (models.User, error)

	// Me returns the account record behind the stored token.
	Me(ctx context.Context) (models.User, error)

	// ListUsers returns every registered user. Requires an admin token.
	ListUsers(ctx context.Context) ([]models.User, error)

	// GetUser returns a single user record by id. Requires an admin token
	// or a token belonging to that same user.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// DeleteUser removes the account and its role links. Requires an admin
	// token.
	DeleteUser(ctx context.Context, userID int64) error

	// BanUser marks the account as banned. Requires an admin token.
	BanUser(ctx context.Context, userID int64) error

	// UnbanUser lifts a ban. Requires an admin token.
	UnbanUser(ctx context.Context, userID int64) error
}
