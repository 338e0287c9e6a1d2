package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aturgenev/identity-api/internal/store"
	"github.com/aturgenev/identity-api/internal/utils"
	"github.com/aturgenev/identity-api/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// withIDParam injects a chi route context carrying the `{id}` parameter, so
// that handlers can be exercised without a full router.
func withIDParam(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// asUser attaches the claims and user id of u to the request context, the
// same way the authenticate middleware does.
func asUser(r *http.Request, u models.User) *http.Request {
	claims := models.Claims{Username: u.Username, Roles: u.Roles}
	ctx := context.WithValue(r.Context(), utils.ClaimsCtxKey, claims)
	ctx = context.WithValue(ctx, utils.UserIDCtxKey, u.UserID)
	return r.WithContext(ctx)
}

// ─────────────────────────────────────────────
// listUsers
// ─────────────────────────────────────────────

func TestListUsers_Success(t *testing.T) {
	users := &mockUserService{
		getAllUsersFn: func(_ context.Context) ([]models.User, error) {
			return []models.User{testAdmin, testUser}, nil
		},
	}

	h := newTestHandler(t, nil, users)
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()

	h.listUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UsersResponse
	decodeBody(t, rec.Body.Bytes(), &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "root", resp.Users[0].Username)
}

func TestListUsers_Empty(t *testing.T) {
	users := &mockUserService{
		getAllUsersFn: func(_ context.Context) ([]models.User, error) {
			return []models.User{}, nil
		},
	}

	h := newTestHandler(t, nil, users)
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()

	h.listUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UsersResponse
	decodeBody(t, rec.Body.Bytes(), &resp)
	assert.Zero(t, resp.Count)
}

func TestListUsers_StorageError(t *testing.T) {
	users := &mockUserService{
		getAllUsersFn: func(_ context.Context) ([]models.User, error) {
			return nil, store.ErrExecutingQuery
		},
	}

	h := newTestHandler(t, nil, users)
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()

	h.listUsers(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// getUser
// ─────────────────────────────────────────────

func TestGetUser_AdminReadsAnyRecord(t *testing.T) {
	users := &mockUserService{
		getUserByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			assert.Equal(t, testUser.UserID, userID)
			return testUser, nil
		},
	}

	h := newTestHandler(t, nil, users)
	req := httptest.NewRequest(http.MethodGet, "/api/users/42", nil)
	req = asUser(withIDParam(req, "42"), testAdmin)
	rec := httptest.NewRecorder()

	h.getUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserResponse
	decodeBody(t, rec.Body.Bytes(), &resp)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestGetUser_SelfRead(t *testing.T) {
	users := &mockUserService{
		getUserByIDFn: func(_ context.Context, _ int64) (models.User, error) {
			return testUser, nil
		},
	}

	h := newTestHandler(t, nil, users)
	req := httptest.NewRequest(http.MethodGet, "/api/users/42", nil)
	req = asUser(withIDParam(req, "42"), testUser)
	rec := httptest.NewRecorder()

	h.getUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestGetUser_NonAdminForeignRecord verifies that a regular user cannot read
// someone else's record.
func TestGetUser_NonAdminForeignRecord(t *testing.T) {
	users := &mockUserService{
		getUserByIDFn: func(_ context.Context, _ int64) (models.User, error) {
			t.Fatal("GetUserByID should not be called")
			return models.User{}, nil
		},
	}

	h := newTestHandler(t, nil, users)
	req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
	req = asUser(withIDParam(req, "1"), testUser)
	rec := httptest.NewRecorder()

	h.getUser(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetUser_InvalidIDParam(t *testing.T) {
	tests := []string{"abc", "0", "-5", "42.5", ""}

	for _, raw := range tests {
		t.Run("id="+raw, func(t *testing.T) {
			h := newTestHandler(t, nil, &mockUserService{})
			req := httptest.NewRequest(http.MethodGet, "/api/users/x", nil)
			req = asUser(withIDParam(req, raw), testAdmin)
			rec := httptest.NewRecorder()

			h.getUser(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetUser_NotFound(t *testing.T) {
	users := &mockUserService{
		getUserByIDFn: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}

	h := newTestHandler(t, nil, users)
	req := httptest.NewRequest(http.MethodGet, "/api/users/999", nil)
	req = asUser(withIDParam(req, "999"), testAdmin)
	rec := httptest.NewRecorder()

	h.getUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// deleteUser / banUser / unbanUser
// ─────────────────────────────────────────────

func TestDeleteUser_Success(t *testing.T) {
	var deletedID int64
	users := &mockUserService{
		deleteUserByIDFn: func(_ context.Context, userID int64) error {
			deletedID = userID
			return nil
		},
	}

	h := newTestHandler(t, nil, users)
	req := httptest.NewRequest(http.MethodDelete, "/api/users/42", nil)
	req = withIDParam(req, "42")
	rec := httptest.NewRecorder()

	h.deleteUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), deletedID)

	var resp models.MessageResponse
	decodeBody(t, rec.Body.Bytes(), &resp)
	assert.True(t, resp.Success)
}

func TestDeleteUser_NotFound(t *testing.T) {
	users := &mockUserService{
		deleteUserByIDFn: func(_ context.Context, _ int64) error {
			return store.ErrUserNotFound
		},
	}

	h := newTestHandler(t, nil, users)
	req := httptest.NewRequest(http.MethodDelete, "/api/users/999", nil)
	req = withIDParam(req, "999")
	rec := httptest.NewRecorder()

	h.deleteUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBanUnbanUser(t *testing.T) {
	tests := []struct {
		name    string
		handler func(h *Handler) http.HandlerFunc
		wire    func(m *mockUserService, called *int64)
	}{
		{
			name:    "Ban",
			handler: func(h *Handler) http.HandlerFunc { return h.banUser },
			wire: func(m *mockUserService, called *int64) {
				m.banUserFn = func(_ context.Context, userID int64) error {
					*called = userID
					return nil
				}
			},
		},
		{
			name:    "Unban",
			handler: func(h *Handler) http.HandlerFunc { return h.unbanUser },
			wire: func(m *mockUserService, called *int64) {
				m.unbanUserFn = func(_ context.Context, userID int64) error {
					*called = userID
					return nil
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called int64
			users := &mockUserService{}
			tt.wire(users, &called)

			h := newTestHandler(t, nil, users)
			req := httptest.NewRequest(http.MethodPut, "/api/users/42/x", nil)
			req = withIDParam(req, strconv.FormatInt(testUser.UserID, 10))
			rec := httptest.NewRecorder()

			tt.handler(h)(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, testUser.UserID, called)
		})
	}
}

func TestBanUser_NotFound(t *testing.T) {
	users := &mockUserService{
		banUserFn: func(_ context.Context, _ int64) error {
			return store.ErrUserNotFound
		},
	}

	h := newTestHandler(t, nil, users)
	req := httptest.NewRequest(http.MethodPut, "/api/users/999/ban", nil)
	req = withIDParam(req, "999")
	rec := httptest.NewRecorder()

	h.banUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
