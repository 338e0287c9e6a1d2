package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (username, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, created_at;`

	linkUserRole = `INSERT INTO user_roles (user_id, role_id)
    VALUES ($1, $2);`

	deleteUserRoleLinks = `DELETE FROM user_roles
    WHERE user_id = $1;`

	deleteUserRow = `DELETE FROM users
    WHERE user_id = $1;`

	setUserBanned = `UPDATE users
    SET is_banned = $2
    WHERE user_id = $1;`

	getUserBanned = `SELECT is_banned
    FROM users
    WHERE user_id = $1;`

	countRoles = `SELECT COUNT(*) FROM roles;`

	seedRoles = `INSERT INTO roles (role_id, name)
    VALUES (1, 'user'), (2, 'admin');`
)

// usersBase is the shared SELECT over users left-joined to roles through
// user_roles. Each user appears once per assigned role; users with no roles
// appear once with a NULL role name. The repository aggregates rows into
// User values with a role name set.
func usersBase() sq.SelectBuilder {
	return sq.Select(
		"u.user_id",
		"u.username",
		"u.password_hash",
		"u.created_at",
		"u.is_banned",
		"r.name AS role_name",
	).
		From("users u").
		LeftJoin("user_roles ur ON ur.user_id = u.user_id").
		LeftJoin("roles r ON r.role_id = ur.role_id").
		OrderBy("u.user_id").
		PlaceholderFormat(sq.Dollar)
}

// buildSelectAllUsersQuery builds the query returning every user with its
// joined role rows.
func buildSelectAllUsersQuery() (string, []any, error) {
	return usersBase().ToSql()
}

// buildSelectUserByIDQuery builds the joined query narrowed to one user id.
func buildSelectUserByIDQuery(userID int64) (string, []any, error) {
	return usersBase().Where(sq.Eq{"u.user_id": userID}).ToSql()
}

// buildSelectUserByUsernameQuery builds the joined query narrowed to one
// username.
func buildSelectUserByUsernameQuery(username string) (string, []any, error) {
	return usersBase().Where(sq.Eq{"u.username": username}).ToSql()
}
