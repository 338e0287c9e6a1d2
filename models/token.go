package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity fact set embedded in every issued JWT.
//
// It extends the standard registered claim set (iss, sub, exp, iat) with the
// username and role names of the account the token was issued for. The "sub"
// claim holds the user id encoded as a base-10 string.
type Claims struct {
	jwt.RegisteredClaims

	// Username is the login identifier of the token's owner. It is carried
	// as a second identity binding next to the "sub" claim so that callers
	// can cross-check the presented token against a supplied username.
	Username string `json:"username"`

	// Roles holds the role names the user carried at issuance time.
	// Authorization decisions re-check live state where it matters;
	// the embedded roles serve the role-gate middleware.
	Roles []string `json:"roles"`
}

// Token wraps a JWT with convenience accessors for authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
//
// UserID is a cached, parsed copy of the "sub" claim converted to int64,
// populated during generation or parsing to avoid repeated string-to-int
// conversions.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON because only the compact string form is meaningful
	// outside the server process.
	*jwt.Token `json:"-"`

	// Claims is the decoded claim set of the token.
	Claims Claims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID extracts the user identifier from the claims' "sub" claim,
// parses it as a base-10 int64, and returns the result.
func (c *Claims) GetUserID() (int64, error) {
	sub, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
