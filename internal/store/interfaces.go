package store

import (
	"context"

	"github.com/aturgenev/identity-api/models"
)

// UserRepository owns the transactional mapping between the User entity and
// its persisted rows across the users and user_roles tables, including role
// aggregation on read.
type UserRepository interface {
	// CreateUser inserts a new user row and links the default "user" role
	// inside a single transaction. Returns the persisted user with its
	// server-assigned id, creation timestamp, and role set.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByID returns the user with the given id, roles aggregated,
	// or ErrUserNotFound.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// FindUserByUsername returns the user with the given username, roles
	// aggregated, or ErrUserNotFound.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindAllUsers returns every persisted user with aggregated roles,
	// ordered by id.
	FindAllUsers(ctx context.Context) ([]models.User, error)

	// DeleteUser removes the user's role links and the user row inside a
	// single transaction. Returns ErrUserNotFound when no user row was
	// deleted.
	DeleteUser(ctx context.Context, userID int64) error

	// SetBanned flips the ban flag of the user. Returns ErrUserNotFound
	// when no row was updated.
	SetBanned(ctx context.Context, userID int64, banned bool) error

	// GetBanned reports the current ban flag of the user, or
	// ErrUserNotFound.
	GetBanned(ctx context.Context, userID int64) (bool, error)

	// CountRoles returns the number of rows in the roles table.
	CountRoles(ctx context.Context) (int64, error)

	// SeedDefaultRoles inserts the fixed (1,"user") and (2,"admin") rows
	// when the roles table is empty. Safe to call on every startup.
	SeedDefaultRoles(ctx context.Context) error
}
