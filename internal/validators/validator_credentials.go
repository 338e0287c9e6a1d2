package validators

import (
	"context"
	"strings"

	"github.com/aturgenev/identity-api/models"
)

const (
	// maxUsernameLength matches the width of the users.username column.
	maxUsernameLength = 255

	// maxPasswordLength is the bcrypt input limit; longer passwords would
	// be silently truncated by the hasher.
	maxPasswordLength = 72
)

// credentialsValidator checks registration and login credentials. It is the
// single source of truth for what a well-formed username and password look
// like; the service layer maps its errors onto the generic invalid-input
// error of the API.
type credentialsValidator struct{}

// NewCredentialsValidator returns a [Validator] accepting
// [models.CredentialsRequest] values.
func NewCredentialsValidator() Validator {
	return &credentialsValidator{}
}

// Validate checks the given credentials. With no field names both username
// and password are validated; otherwise only the named fields are
// ("username", "password").
func (v *credentialsValidator) Validate(_ context.Context, value any, fields ...string) error {
	creds, ok := value.(models.CredentialsRequest)
	if !ok {
		return ErrUnsupportedType
	}

	if len(fields) == 0 {
		fields = []string{"username", "password"}
	}

	for _, field := range fields {
		switch field {
		case "username":
			if err := validateUsername(creds.Username); err != nil {
				return err
			}
		case "password":
			if err := validatePassword(creds.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return ErrUsernameInvalidChars
		}
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '_' || r == '-' || r == '@':
		return true
	default:
		return false
	}
}
