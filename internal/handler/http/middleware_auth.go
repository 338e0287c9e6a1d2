package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aturgenev/identity-api/internal/logger"
	"github.com/aturgenev/identity-api/internal/service"
	"github.com/aturgenev/identity-api/internal/store"
	"github.com/aturgenev/identity-api/internal/utils"
)

// authenticate enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, verifies the
// signature, issuer, and expiry via the auth service, and then re-checks the
// live account state: a token whose subject has since been deleted is
// rejected with 401, a banned subject with 403. On success the decoded
// claims and the subject's id are stored in the request context under
// [utils.ClaimsCtxKey] and [utils.UserIDCtxKey].
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, ok := utils.GetTokenFromAuthHeader(authHeader)
		if !ok {
			respondError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			respondError(w, r, err)
			return
		}

		// The token alone is not enough: the account behind it may have
		// been deleted or banned after issuance.
		if _, err := h.services.AuthService.ValidateToken(ctx, token.UserID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				// A token for a vanished account is indistinguishable from
				// an invalid one as far as the caller is concerned.
				err = service.ErrTokenIsInvalid
			}
			respondError(w, r, err)
			return
		}

		log.Debug().Int64("user_id", token.UserID).Msg("request authenticated")

		ctx = context.WithValue(ctx, utils.ClaimsCtxKey, token.Claims)
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
