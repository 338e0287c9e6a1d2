package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aturgenev/identity-api/models"
)

// Init wires the full route table. requestTimeout bounds every request via
// [middleware.Timeout]; a handler that outlives it receives a cancelled
// context.
func (h *Handler) Init(requestTimeout time.Duration) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(requestTimeout))
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authentication
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes for any authenticated user
	router.Group(func(r chi.Router) {
		r.Use(h.authenticate)

		r.Post("/api/auth/validate", h.validateToken)
		r.Get("/api/auth/me", h.me)
		r.Get("/api/users/{id}", h.getUser)
	})

	// admin-only routes
	router.Group(func(r chi.Router) {
		r.Use(h.authenticate)
		r.Use(h.requireRoles(models.RoleAdmin))

		r.Get("/api/users", h.listUsers)
		r.Delete("/api/users/{id}", h.deleteUser)
		r.Put("/api/users/{id}/ban", h.banUser)
		r.Put("/api/users/{id}/unban", h.unbanUser)
	})

	return router
}
