package handler

import (
	"github.com/aturgenev/identity-api/internal/config"
	"github.com/aturgenev/identity-api/internal/handler/http"
	"github.com/aturgenev/identity-api/internal/logger"
	"github.com/aturgenev/identity-api/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
