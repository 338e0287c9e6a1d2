// Package migrations carries the embedded SQL schema of the identity
// store: the users table plus the roles and user_roles tables behind role
// assignment. Migrate applies it with goose on every startup; already
// applied versions are skipped.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var schemaFS embed.FS

// Migrate brings the connected database up to the latest schema version.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(schemaFS)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migration error setting dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migration error applying identity schema: %w", err)
	}

	return nil
}
