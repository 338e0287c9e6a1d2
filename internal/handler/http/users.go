package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aturgenev/identity-api/internal/logger"
	"github.com/aturgenev/identity-api/internal/utils"
	"github.com/aturgenev/identity-api/models"
)

// userIDParam parses the `{id}` path parameter. Only positive integers are
// accepted.
func userIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidUserIDParam
	}
	return id, nil
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.services.UserService.GetAllUsers(ctx)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UsersResponse{
		Success: true,
		Count:   len(users),
		Users:   users,
	}, http.StatusOK)
}

// getUser returns a single user record. Admins may read any record; every
// other caller may read only their own.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := userIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		respondError(w, r, ErrAccessDenied)
		return
	}
	callerID, _ := utils.GetUserIDFromContext(ctx)

	isAdmin := false
	for _, role := range claims.Roles {
		if role == models.RoleAdmin {
			isAdmin = true
			break
		}
	}
	if !isAdmin && callerID != id {
		respondError(w, r, ErrAccessDenied)
		return
	}

	user, err := h.services.UserService.GetUserByID(ctx, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{Success: true, User: &user}, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := userIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.services.UserService.DeleteUserByID(ctx, id); err != nil {
		respondError(w, r, err)
		return
	}

	log.Info().Int64("user_id", id).Msg("user deleted")
	utils.WriteJSON(w, models.MessageResponse{Success: true, Message: "user deleted"}, http.StatusOK)
}

func (h *Handler) banUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := userIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.services.UserService.BanUser(ctx, id); err != nil {
		respondError(w, r, err)
		return
	}

	log.Info().Int64("user_id", id).Msg("user banned")
	utils.WriteJSON(w, models.MessageResponse{Success: true, Message: "user banned"}, http.StatusOK)
}

func (h *Handler) unbanUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := userIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.services.UserService.UnbanUser(ctx, id); err != nil {
		respondError(w, r, err)
		return
	}

	log.Info().Int64("user_id", id).Msg("user unbanned")
	utils.WriteJSON(w, models.MessageResponse{Success: true, Message: "user unbanned"}, http.StatusOK)
}
