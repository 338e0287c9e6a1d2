package store

import (
	"context"

	"github.com/aturgenev/identity-api/internal/config"
	"github.com/aturgenev/identity-api/internal/logger"
)

// Storages bundles every repository backed by the shared database
// connection. It is the single persistence dependency handed to the
// service layer.
type Storages struct {
	UserRepository UserRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, seeds the
// fixed role rows, and returns the repository container.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		return nil, err
	}

	userRepository := NewUserRepository(db, log)
	if err = userRepository.SeedDefaultRoles(ctx); err != nil {
		return nil, err
	}

	return &Storages{UserRepository: userRepository}, nil
}
