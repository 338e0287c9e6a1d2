package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultBcryptCost      = bcrypt.DefaultCost
	defaultShutdownTimeout = 10 * time.Second
)

// applyDefaults fills optional fields that were left unset by every source.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants. The application fails fast on an incomplete config
// instead of limping along and failing on the first request.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.TokenSignKey == "" || cfg.Auth.TokenIssuer == "" || cfg.Auth.TokenDuration <= 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
