package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aturgenev/identity-api/internal/logger"
	"github.com/aturgenev/identity-api/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account lifecycle operations against the "users",
// "roles" and "user_roles" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and its default role link inside a
// single transaction, then returns the fully populated [models.User] with
// server-assigned fields (UserID, CreatedAt) and the "user" role attached.
//
// The transaction guarantees that a concurrent reader never observes a user
// row without its default role link: either both inserts commit or neither.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Transaction begin/commit failures → wrapped sentinel errors.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: cannot begin transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, createUser, user.Username, user.PasswordHash)
	if err = row.Scan(&user.UserID, &user.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: inserting user row")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUsernameAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, linkUserRole, user.UserID, models.RoleIDUser); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Int64("user_id", user.UserID).Msg("error: inserting default role link")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: committing transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	user.IsBanned = false
	user.Roles = []string{models.RoleUser}

	return user, nil
}

// FindUserByID retrieves a user record by its id, with role names aggregated
// from the left-joined roles table.
//
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	query, args, err := buildSelectUserByIDQuery(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOneUser(ctx, query, args)
}

// FindUserByUsername retrieves a user record by its username, with role names
// aggregated from the left-joined roles table.
//
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	query, args, err := buildSelectUserByUsernameQuery(username)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOneUser(ctx, query, args)
}

// FindAllUsers retrieves every persisted user with aggregated roles,
// ordered by user id.
func (r *userRepository) FindAllUsers(ctx context.Context) ([]models.User, error) {
	query, args, err := buildSelectAllUsersQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUsers(ctx, query, args)
}

// DeleteUser removes the user's role links first and the user row second,
// inside one transaction so referential integrity holds and the two deletes
// are never observable half-applied.
//
// The transaction spans both statements: when the users delete affects zero
// rows the whole transaction is rolled back and [ErrUserNotFound] is
// returned (the join rows were already gone for a non-existent user, so the
// rollback is a no-op, but the boundary still covers both statements).
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: cannot begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteUserRoleLinks, userID); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("error: deleting role links")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	res, err := tx.ExecContext(ctx, deleteUserRow, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("error: deleting user row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: committing transaction")
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return nil
}

// SetBanned updates the ban flag of the given user.
//
// Returns [ErrUserNotFound] when no row was updated.
func (r *userRepository) SetBanned(ctx context.Context, userID int64, banned bool) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, setUserBanned, userID, banned)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetBanned").Int64("user_id", userID).Msg("error: updating ban flag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetBanned reports the current ban flag of the given user.
//
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) GetBanned(ctx context.Context, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	var banned bool
	err := r.db.QueryRowContext(ctx, getUserBanned, userID).Scan(&banned)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetBanned").Int64("user_id", userID).Msg("error: reading ban flag")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return banned, nil
}

// CountRoles returns the number of rows currently in the roles table.
func (r *userRepository) CountRoles(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countRoles).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// SeedDefaultRoles inserts the fixed (1,"user") and (2,"admin") reference
// rows when the roles table is empty. Idempotent: a non-zero role count
// makes the call a no-op.
func (r *userRepository) SeedDefaultRoles(ctx context.Context) error {
	log := logger.FromContext(ctx)

	count, err := r.CountRoles(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err = r.db.ExecContext(ctx, seedRoles); err != nil {
		log.Err(err).Str("func", "*userRepository.SeedDefaultRoles").Msg("error: seeding default roles")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	log.Info().Msg("seeded default roles: user, admin")

	return nil
}

// findOneUser runs a joined user query expected to match at most one user
// and returns [ErrUserNotFound] on an empty result.
func (r *userRepository) findOneUser(ctx context.Context, query string, args []any) (models.User, error) {
	users, err := r.queryUsers(ctx, query, args)
	if err != nil {
		return models.User{}, err
	}
	if len(users) == 0 {
		return models.User{}, ErrUserNotFound
	}

	return users[0], nil
}

// queryUsers executes a joined user query and folds the per-role rows into
// one [models.User] per user id. NULL role names produced by the left join
// for role-less users are skipped, yielding an empty role set.
func (r *userRepository) queryUsers(ctx context.Context, query string, args []any) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.queryUsers").Msg("failed to execute user select")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 16)
	index := make(map[int64]int)

	for rows.Next() {
		var (
			user     models.User
			roleName sql.NullString
		)

		if err = rows.Scan(&user.UserID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.IsBanned, &roleName); err != nil {
			log.Err(err).Str("func", "*userRepository.queryUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		i, seen := index[user.UserID]
		if !seen {
			user.Roles = []string{}
			users = append(users, user)
			i = len(users) - 1
			index[user.UserID] = i
		}

		if roleName.Valid {
			users[i].Roles = append(users[i].Roles, roleName.String)
		}
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.queryUsers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}
