package http

import (
	"github.com/aturgenev/identity-api/internal/logger"
	"github.com/aturgenev/identity-api/internal/service"
)

// Handler serves the identity HTTP API: credential registration and login,
// token validation, and the admin-facing user directory. Routes are
// attached by Init; the role tiers of the route table are enforced by the
// authenticate and requireRoles middleware.
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

// NewHandler wires the auth and user services into a Handler ready for Init.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("creating identity http handler")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
