package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aturgenev/identity-api/internal/config"
	"github.com/aturgenev/identity-api/internal/logger"
	"github.com/aturgenev/identity-api/internal/utils"
	"github.com/aturgenev/identity-api/models"
	"github.com/golang-jwt/jwt/v5"
)

// authService is the concrete implementation of [AuthService]. It delegates
// account rules to the user directory and owns the JWT token lifecycle.
type authService struct {
	// userService is the directory used for account rules and live-state
	// re-checks.
	userService UserService

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given user
// directory and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userService UserService, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userService:   userService,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Register creates a new account through the user directory. A duplicate
// username surfaces as store.ErrUsernameAlreadyExists.
func (a *authService) Register(ctx context.Context, username, password string) (models.User, error) {
	return a.userService.CreateUser(ctx, username, password)
}

// Login authenticates the credentials and issues a signed token embedding
// the user's id, username, and roles.
//
// Authentication failures pass through as the directory's typed errors
// (store.ErrUserNotFound, ErrUserBanned, ErrWrongPassword) so that the HTTP
// layer can map them without message inspection.
func (a *authService) Login(ctx context.Context, username, password string) (models.Token, models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userService.AuthenticateUser(ctx, username, password)
	if err != nil {
		return models.Token{}, models.User{}, err
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("token issuance after login failed")
		return models.Token{}, models.User{}, err
	}

	return token, user, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// issuer, and expiry. Failures are normalised to two sentinels so callers do
// not inspect low-level JWT errors: ErrTokenIsExpired for an elapsed expiry,
// ErrTokenIsInvalid for everything else.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsInvalid
	}

	return token, nil
}

// ValidateToken re-fetches the live account behind a token subject.
//
// This closes the gap between token issuance and account state changes: a
// token remains cryptographically valid after the account is deleted or
// banned, so the current row decides.
//
// Returns the current sanitized user or:
//   - store.ErrUserNotFound if the account is gone.
//   - ErrUserBanned if the account is now banned.
func (a *authService) ValidateToken(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userService.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if user.IsBanned {
		return models.User{}, ErrUserBanned
	}

	return user, nil
}

// ValidateTokenWithUsername verifies the token's signature and expiry, checks
// that its embedded username matches the supplied one, then runs the live
// account validation.
//
// The username comparison is a second identity binding: presenting a valid
// token string is not enough, the caller must also know whose token it is.
// A mismatch surfaces as ErrTokenSubjectMismatch.
func (a *authService) ValidateTokenWithUsername(ctx context.Context, tokenString, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.User{}, err
	}

	if token.Claims.Username != username {
		log.Warn().Str("supplied", username).Msg("token username binding check failed")
		return models.User{}, ErrTokenSubjectMismatch
	}

	return a.ValidateToken(ctx, token.UserID)
}
