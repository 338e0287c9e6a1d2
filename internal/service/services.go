package service

import (
	"github.com/aturgenev/identity-api/internal/config"
	"github.com/aturgenev/identity-api/internal/logger"
	"github.com/aturgenev/identity-api/internal/store"
)

// Services bundles every business service handed to the transport layer.
type Services struct {
	UserService UserService
	AuthService AuthService
}

// NewServices wires the user directory and auth services onto the given
// repositories.
func NewServices(storages *store.Storages, cfg config.Auth, logger *logger.Logger) *Services {
	userService := NewUserService(storages.UserRepository, cfg, logger)

	return &Services{
		UserService: userService,
		AuthService: NewAuthService(userService, cfg, logger),
	}
}
