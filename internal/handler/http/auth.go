package http

import (
	"encoding/json"
	"net/http"

	"github.com/aturgenev/identity-api/internal/logger"
	"github.com/aturgenev/identity-api/internal/utils"
	"github.com/aturgenev/identity-api/models"
)

// register creates a new account from the credentials in the request body
// and answers 201 with the sanitized user. No token is issued here; the
// client is expected to log in afterwards.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, ErrInvalidJSONBody)
		return
	}

	user, err := h.services.AuthService.Register(ctx, req.Username, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.UserID).Str("username", user.Username).Msg("user registered")

	utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		Message: "user registered",
		User:    &user,
	}, http.StatusCreated)
}

// login authenticates the credentials in the request body and answers 200
// with a signed token and the sanitized user. An unknown username maps to
// 404 and a wrong password to 401; a banned account is rejected before the
// password is checked and maps to 403.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, ErrInvalidJSONBody)
		return
	}

	token, user, err := h.services.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user logged in")

	utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		Message: "login successful",
		Token:   token.SignedString,
		User:    &user,
	}, http.StatusOK)
}

// validateToken re-validates the bearer token against the username in the
// request body and the live account state. The authenticate middleware has
// already vetted the token itself; this endpoint additionally binds it to
// the supplied username.
func (h *Handler) validateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ValidateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, ErrInvalidJSONBody)
		return
	}

	tokenString, ok := utils.GetTokenFromAuthHeader(r.Header.Get("Authorization"))
	if !ok {
		respondError(w, r, ErrInvalidAuthorizationHeader)
		return
	}

	user, err := h.services.AuthService.ValidateTokenWithUsername(ctx, tokenString, req.Username)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ValidateTokenResponse{
		Valid:   true,
		Message: "token is valid",
		User:    &user,
	}, http.StatusOK)
}

// me returns the live record of the authenticated caller.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondError(w, r, ErrAccessDenied)
		return
	}

	user, err := h.services.UserService.GetUserByID(ctx, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{Success: true, User: &user}, http.StatusOK)
}
