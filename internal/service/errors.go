package service

import "errors"

// Sentinel errors returned by the service layer. The HTTP error mapper
// translates them to status codes; no caller may match on message text.
var (
	// ErrInvalidDataProvided is returned when a request carries missing or
	// malformed input (empty username/password, non-positive id).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned when the supplied password does not match
	// the stored credential hash of an existing, unbanned user.
	ErrWrongPassword = errors.New("invalid password")

	// ErrUserBanned is returned when an operation is attempted on behalf of
	// a banned account. During login it is raised before any password
	// verification so that banned accounts never receive a
	// password-correctness signal.
	ErrUserBanned = errors.New("user has been banned")

	// ErrTokenIsExpired is returned when a presented token failed
	// validation solely because its expiry has passed.
	ErrTokenIsExpired = errors.New("token is expired")

	// ErrTokenIsInvalid is returned when a presented token is malformed,
	// carries a bad signature, or names the wrong issuer.
	ErrTokenIsInvalid = errors.New("token is invalid")

	// ErrTokenSubjectMismatch is returned when the username embedded in a
	// valid token does not match the username supplied alongside it.
	ErrTokenSubjectMismatch = errors.New("token does not belong to the supplied username")

	// ErrTokenCreationFailed wraps signing failures during token issuance.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
