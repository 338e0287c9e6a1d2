package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aturgenev/identity-api/internal/service"
	"github.com/aturgenev/identity-api/internal/store"
	"github.com/aturgenev/identity-api/internal/utils"
	"github.com/aturgenev/identity-api/models"
)

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

// TestRegister_Success verifies that a valid registration request results in
// 201 Created with the sanitized user in the body and no token.
func TestRegister_Success(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, username, _ string) (models.User, error) {
			return models.User{UserID: 42, Username: username, Roles: []string{models.RoleUser}}, nil
		},
	}

	h := newTestHandler(t, auth, nil)
	body := jsonBody(t, models.CredentialsRequest{Username: "alice", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.AuthResponse
	decodeBody(t, rec.Body.Bytes(), &resp)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_InvalidDataProvided(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
	}

	h := newTestHandler(t, auth, nil)
	body := jsonBody(t, models.CredentialsRequest{Username: "", Password: ""})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_UsernameAlreadyExists(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, fmt.Errorf("saving user: %w", store.ErrUsernameAlreadyExists)
		},
	}

	h := newTestHandler(t, auth, nil)
	body := jsonBody(t, models.CredentialsRequest{Username: "alice", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// TestRegister_UnexpectedError verifies that storage failures are masked with
// the generic 500 status text instead of leaking the error message.
func TestRegister_UnexpectedError(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, errors.New("connection refused")
		},
	}

	h := newTestHandler(t, auth, nil)
	body := jsonBody(t, models.CredentialsRequest{Username: "alice", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		loginFn: func(_ context.Context, username, _ string) (models.Token, models.User, error) {
			return models.Token{SignedString: signedToken},
				models.User{UserID: 42, Username: username, Roles: []string{models.RoleUser}},
				nil
		},
	}

	h := newTestHandler(t, auth, nil)
	body := jsonBody(t, models.CredentialsRequest{Username: "alice", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AuthResponse
	decodeBody(t, rec.Body.Bytes(), &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, signedToken, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(42), resp.User.UserID)
}

func TestLogin_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(""))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestLogin_UserNotFoundAndWrongPassword verifies that an unknown username
// and a wrong password are indistinguishable to the caller: both yield 401.
func TestLogin_UserNotFoundAndWrongPassword(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "UserNotFound", err: store.ErrUserNotFound},
		{name: "WrongPassword", err: service.ErrWrongPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				loginFn: func(_ context.Context, _, _ string) (models.Token, models.User, error) {
					return models.Token{}, models.User{}, tt.err
				},
			}

			h := newTestHandler(t, auth, nil)
			body := jsonBody(t, models.CredentialsRequest{Username: "ghost", Password: "wrong"})
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			rec := httptest.NewRecorder()

			h.login(rec, req)

			if tt.err == store.ErrUserNotFound {
				assert.Equal(t, http.StatusNotFound, rec.Code)
			} else {
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
			}
		})
	}
}

func TestLogin_BannedUser(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.Token, models.User, error) {
			return models.Token{}, models.User{}, service.ErrUserBanned
		},
	}

	h := newTestHandler(t, auth, nil)
	body := jsonBody(t, models.CredentialsRequest{Username: "alice", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ─────────────────────────────────────────────
// validateToken
// ─────────────────────────────────────────────

func TestValidateToken_Success(t *testing.T) {
	auth := &mockAuthService{
		validateTokenWithUsernameFn: func(_ context.Context, tokenString, username string) (models.User, error) {
			assert.Equal(t, "signed.jwt.token", tokenString)
			assert.Equal(t, "alice", username)
			return testUser, nil
		},
	}

	h := newTestHandler(t, auth, nil)
	body := jsonBody(t, models.ValidateTokenRequest{Username: "alice"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/validate", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer signed.jwt.token")
	rec := httptest.NewRecorder()

	h.validateToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ValidateTokenResponse
	decodeBody(t, rec.Body.Bytes(), &resp)
	assert.True(t, resp.Valid)
	require.NotNil(t, resp.User)
	assert.Equal(t, testUser.UserID, resp.User.UserID)
}

func TestValidateToken_SubjectMismatch(t *testing.T) {
	auth := &mockAuthService{
		validateTokenWithUsernameFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, service.ErrTokenSubjectMismatch
		},
	}

	h := newTestHandler(t, auth, nil)
	body := jsonBody(t, models.ValidateTokenRequest{Username: "bob"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/validate", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer signed.jwt.token")
	rec := httptest.NewRecorder()

	h.validateToken(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidateToken_MissingHeader(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil)
	body := jsonBody(t, models.ValidateTokenRequest{Username: "alice"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/validate", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.validateToken(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

func TestMe_Success(t *testing.T) {
	users := &mockUserService{
		getUserByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			assert.Equal(t, testUser.UserID, userID)
			return testUser, nil
		},
	}

	h := newTestHandler(t, nil, users)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, testUser.UserID)
	rec := httptest.NewRecorder()

	h.me(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserResponse
	decodeBody(t, rec.Body.Bytes(), &resp)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)
}

// TestMe_NoUserIDInContext simulates a broken middleware chain: a request
// that reached the handler without authentication must be rejected.
func TestMe_NoUserIDInContext(t *testing.T) {
	h := newTestHandler(t, nil, &mockUserService{})
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	h.me(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMe_UserDeletedMeanwhile(t *testing.T) {
	users := &mockUserService{
		getUserByIDFn: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}

	h := newTestHandler(t, nil, users)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, testUser.UserID)
	rec := httptest.NewRecorder()

	h.me(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
