package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aturgenev/identity-api/internal/service"
	"github.com/aturgenev/identity-api/internal/store"
	"github.com/aturgenev/identity-api/internal/utils"
	"github.com/aturgenev/identity-api/models"
)

// nextRecorder is a terminal handler that records whether it was reached and
// what the middleware left in the request context.
type nextRecorder struct {
	called  bool
	userID  int64
	claims  models.Claims
	gotID   bool
	gotClms bool
}

func (n *nextRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.called = true
		n.userID, n.gotID = utils.GetUserIDFromContext(r.Context())
		n.claims, n.gotClms = utils.GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func parsedToken(u models.User) models.Token {
	return models.Token{
		UserID: u.UserID,
		Claims: models.Claims{Username: u.Username, Roles: u.Roles},
	}
}

func TestAuthenticate_Success(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			assert.Equal(t, "good.token", tokenString)
			return parsedToken(testUser), nil
		},
		validateTokenFn: func(_ context.Context, userID int64) (models.User, error) {
			assert.Equal(t, testUser.UserID, userID)
			return testUser, nil
		},
	}

	h := newTestHandler(t, auth, nil)
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good.token")
	rec := httptest.NewRecorder()

	h.authenticate(next.handler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, next.called)
	require.True(t, next.gotID)
	assert.Equal(t, testUser.UserID, next.userID)
	require.True(t, next.gotClms)
	assert.Equal(t, testUser.Username, next.claims.Username)
	assert.Equal(t, testUser.Roles, next.claims.Roles)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil)
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	h.authenticate(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	tests := []string{"good.token", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz", "Bearer a b"}

	for _, header := range tests {
		t.Run(header, func(t *testing.T) {
			h := newTestHandler(t, &mockAuthService{}, nil)
			next := &nextRecorder{}

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()

			h.authenticate(next.handler()).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, next.called)
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpired
		},
	}

	h := newTestHandler(t, auth, nil)
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer expired.token")
	rec := httptest.NewRecorder()

	h.authenticate(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

// TestAuthenticate_SubjectDeleted verifies that a cryptographically valid
// token whose account no longer exists is rejected with 401, not 404.
func TestAuthenticate_SubjectDeleted(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return parsedToken(testUser), nil
		},
		validateTokenFn: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}

	h := newTestHandler(t, auth, nil)
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer orphan.token")
	rec := httptest.NewRecorder()

	h.authenticate(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

// TestAuthenticate_SubjectBanned verifies that a valid token for a banned
// account is rejected with 403.
func TestAuthenticate_SubjectBanned(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return parsedToken(testUser), nil
		},
		validateTokenFn: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{}, service.ErrUserBanned
		},
	}

	h := newTestHandler(t, auth, nil)
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer banned.token")
	rec := httptest.NewRecorder()

	h.authenticate(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, next.called)
}
