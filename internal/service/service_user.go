package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aturgenev/identity-api/internal/config"
	"github.com/aturgenev/identity-api/internal/logger"
	"github.com/aturgenev/identity-api/internal/store"
	"github.com/aturgenev/identity-api/internal/utils"
	"github.com/aturgenev/identity-api/internal/validators"
	"github.com/aturgenev/identity-api/models"
)

// userService is the concrete implementation of [UserService]. It owns
// credential hashing and the sanitizing of user projections; no credential
// hash leaves this layer.
type userService struct {
	// userRepository is the data-access layer used to persist and look up users.
	userRepository store.UserRepository

	// credentials validates usernames and passwords before any hashing or
	// storage work happens.
	credentials validators.Validator

	// bcryptCost is the work factor applied when hashing new passwords.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewUserService constructs a [UserService] wired to the given repository
// and populated with the hashing work factor from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewUserService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		credentials:    validators.NewCredentialsValidator(),
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// CreateUser registers a new account.
//
// It validates the credentials, rejects duplicate usernames before any
// write, hashes the password, and delegates persistence to the repository
// (which links the default "user" role in the same transaction).
//
// Returns the sanitized persisted user or:
//   - ErrInvalidDataProvided if the credentials fail validation.
//   - store.ErrUsernameAlreadyExists if the username is taken.
func (s *userService) CreateUser(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	creds := models.CredentialsRequest{Username: username, Password: password}
	if err := s.credentials.Validate(ctx, creds); err != nil {
		log.Err(err).Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	_, err := s.userRepository.FindUserByUsername(ctx, username)
	if err == nil {
		log.Warn().Str("username", username).Msg("username already exists")
		return models.User{}, store.ErrUsernameAlreadyExists
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Str("username", username).Msg("uniqueness check failed")
		return models.User{}, fmt.Errorf("uniqueness check failed: %w", err)
	}

	passwordHash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		log.Err(err).Str("username", username).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	created, err := s.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created.Sanitized(), nil
}

// GetUserByID returns the sanitized user with the given id, or
// store.ErrUserNotFound.
func (s *userService) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	if userID <= 0 {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	return user.Sanitized(), nil
}

// GetUserByUsername returns the sanitized user with the given username, or
// store.ErrUserNotFound.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	if strings.TrimSpace(username) == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}

	return user.Sanitized(), nil
}

// GetAllUsers returns every persisted user in sanitized form.
func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.FindAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i] = users[i].Sanitized()
	}

	return users, nil
}

// DeleteUserByID removes the account with the given id, surfacing
// store.ErrUserNotFound unchanged.
func (s *userService) DeleteUserByID(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrInvalidDataProvided
	}

	return s.userRepository.DeleteUser(ctx, userID)
}

// BanUser flags the account as banned.
func (s *userService) BanUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrInvalidDataProvided
	}

	return s.userRepository.SetBanned(ctx, userID, true)
}

// UnbanUser clears the ban flag of the account.
func (s *userService) UnbanUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrInvalidDataProvided
	}

	return s.userRepository.SetBanned(ctx, userID, false)
}

// GetUserBanStatus reports the live ban flag of the account.
func (s *userService) GetUserBanStatus(ctx context.Context, userID int64) (bool, error) {
	if userID <= 0 {
		return false, ErrInvalidDataProvided
	}

	return s.userRepository.GetBanned(ctx, userID)
}

// AuthenticateUser verifies the supplied credentials against the stored
// account state.
//
// Checks run in a fixed order: existence, ban status, then password. The ban
// check precedes password verification so that a banned account never learns
// whether its password was correct.
//
// Returns the sanitized user on success or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - store.ErrUserNotFound if no account carries the username.
//   - ErrUserBanned if the account is banned.
//   - ErrWrongPassword if the password does not match.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	creds := models.CredentialsRequest{Username: username, Password: password}
	if err := s.credentials.Validate(ctx, creds); err != nil {
		log.Err(err).Msg("invalid credentials provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, err
	}

	if user.IsBanned {
		log.Warn().Int64("id", user.UserID).Str("username", user.Username).Msg("banned user attempted to authenticate")
		return models.User{}, ErrUserBanned
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("password verification failed")
		return models.User{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Warn().Int64("id", user.UserID).Str("username", user.Username).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return user.Sanitized(), nil
}
