package http

import "errors"

// Sentinel errors raised by the transport layer itself, before a request
// ever reaches the service layer. Callers match them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the authentication
	// middleware when the request carries no "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not a well-formed `Bearer <token>` value.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrAccessDenied is returned when an authenticated caller lacks the
	// role required by the requested route, or tries to read another
	// user's record without the admin role.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidUserIDParam is returned when the `{id}` path parameter is
	// not a positive integer.
	ErrInvalidUserIDParam = errors.New("invalid user id in request path")

	// ErrInvalidJSONBody is returned when a request body cannot be decoded
	// into the expected JSON shape.
	ErrInvalidJSONBody = errors.New("invalid JSON was passed")
)
