package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrUsernameRequired     = errors.New("username is required")
	ErrUsernameTooLong      = errors.New("username is too long")
	ErrUsernameInvalidChars = errors.New("username contains invalid characters")
	ErrPasswordRequired     = errors.New("password is required")
	ErrPasswordTooLong      = errors.New("password is too long")
)
