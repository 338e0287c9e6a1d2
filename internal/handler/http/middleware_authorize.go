package http

import (
	"net/http"

	"github.com/aturgenev/identity-api/internal/logger"
	"github.com/aturgenev/identity-api/internal/utils"
)

// requireRoles builds a middleware that rejects authenticated requests whose
// token claims carry none of the given roles. With an empty role list the
// middleware passes every authenticated request through.
//
// It must run after [Handler.authenticate]; a request without claims in its
// context is rejected with 403.
func (h *Handler) requireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			claims, ok := utils.GetClaimsFromContext(r.Context())
			if !ok {
				respondError(w, r, ErrAccessDenied)
				return
			}

			if len(roles) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			for _, required := range roles {
				for _, have := range claims.Roles {
					if have == required {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			log.Warn().
				Str("username", claims.Username).
				Strs("required_roles", roles).
				Strs("token_roles", claims.Roles).
				Msg("request lacks required role")
			respondError(w, r, ErrAccessDenied)
		})
	}
}
