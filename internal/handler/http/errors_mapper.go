package http

import (
	"errors"
	"net/http"

	"github.com/aturgenev/identity-api/internal/logger"
	"github.com/aturgenev/identity-api/internal/service"
	"github.com/aturgenev/identity-api/internal/store"
	"github.com/aturgenev/identity-api/internal/utils"
	"github.com/aturgenev/identity-api/models"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSONBody:    http.StatusBadRequest,
	ErrInvalidUserIDParam: http.StatusBadRequest,

	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrAccessDenied:               http.StatusForbidden,

	service.ErrInvalidDataProvided:  http.StatusBadRequest,
	service.ErrWrongPassword:        http.StatusUnauthorized,
	service.ErrTokenIsExpired:       http.StatusUnauthorized,
	service.ErrTokenIsInvalid:       http.StatusUnauthorized,
	service.ErrTokenSubjectMismatch: http.StatusUnauthorized,
	service.ErrUserBanned:           http.StatusForbidden,

	store.ErrUserNotFound:          http.StatusNotFound,
	store.ErrUsernameAlreadyExists: http.StatusConflict,

	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrExecutingQuery:        http.StatusInternalServerError,
	store.ErrBeginningTransaction:  http.StatusInternalServerError,
	store.ErrCommittingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:    http.StatusInternalServerError,
	store.ErrScanningRow:           http.StatusInternalServerError,
	store.ErrScanningRows:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes a JSON error body with the mapped
// status code. Internal errors are masked with the generic status text so
// that storage details never leak to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(http.StatusInternalServerError)
	}

	log.Err(err).Int("status", status).Send()
	utils.WriteJSON(w, models.MessageResponse{Success: false, Message: message}, status)
}
