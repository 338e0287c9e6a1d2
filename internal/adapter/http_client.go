package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aturgenev/identity-api/internal/utils"
	"github.com/aturgenev/identity-api/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPServerAdapter(cfg HTTPClientConfig) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := utils.NewHTTPClient()
	cli.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli.Client}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// authorized returns a request with the stored bearer token attached.
func (h *httpServerAdapter) authorized(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(h.Token())
}

func (h *httpServerAdapter) Register(ctx context.Context, username, password string) (models.User, error) {
	var body models.AuthResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.CredentialsRequest{Username: username, Password: password}).
		SetResult(&body).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	if body.User == nil {
		return models.User{}, errors.New("register: empty user in response")
	}

	return *body.User, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, username, password string) (models.User, error) {
	var body models.AuthResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.CredentialsRequest{Username: username, Password: password}).
		SetResult(&body).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	if body.Token == "" || body.User == nil {
		return models.User{}, errors.New("login: incomplete response body")
	}

	h.SetToken(body.Token)
	return *body.User, nil
}

func (h *httpServerAdapter) ValidateToken(ctx context.Context, username string) (models.User, error) {
	var body models.ValidateTokenResponse
	resp, err := h.authorized(ctx).
		SetBody(models.ValidateTokenRequest{Username: username}).
		SetResult(&body).
		Post("/api/auth/validate")
	if err != nil {
		return models.User{}, fmt.Errorf("validate request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	if body.User == nil {
		return models.User{}, errors.New("validate: empty user in response")
	}

	return *body.User, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var body models.UserResponse
	resp, err := h.authorized(ctx).
		SetResult(&body).
		Get("/api/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	if body.User == nil {
		return models.User{}, errors.New("me: empty user in response")
	}

	return *body.User, nil
}

func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.User, error) {
	var body models.UsersResponse
	resp, err := h.authorized(ctx).
		SetResult(&body).
		Get("/api/users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return body.Users, nil
}

func (h *httpServerAdapter) GetUser(ctx context.Context, userID int64) (models.User, error) {
	var body models.UserResponse
	resp, err := h.authorized(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("/api/users/%d", userID))
	if err != nil {
		return models.User{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	if body.User == nil {
		return models.User{}, errors.New("get user: empty user in response")
	}

	return *body.User, nil
}

func (h *httpServerAdapter) DeleteUser(ctx context.Context, userID int64) error {
	resp, err := h.authorized(ctx).
		Delete(fmt.Sprintf("/api/users/%d", userID))
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) BanUser(ctx context.Context, userID int64) error {
	resp, err := h.authorized(ctx).
		Put(fmt.Sprintf("/api/users/%d/ban", userID))
	if err != nil {
		return fmt.Errorf("ban user request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) UnbanUser(ctx context.Context, userID int64) error {
	resp, err := h.authorized(ctx).
		Put(fmt.Sprintf("/api/users/%d/unban", userID))
	if err != nil {
		return fmt.Errorf("unban user request: %w", err)
	}

	return mapHTTPError(resp)
}
