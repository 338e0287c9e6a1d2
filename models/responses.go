package models

// AuthResponse is the JSON body returned by the register and login
// endpoints. Token is present only after a successful login.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// ValidateTokenResponse is the JSON body returned by the token validation
// endpoint. User reflects the live account state, not the token claims.
type ValidateTokenResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}

// UserResponse is the JSON body returned by single-user endpoints
// (me, get by id).
type UserResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

// UsersResponse is the JSON body returned by the user listing endpoint.
//
// Count is the total number of entries in Users. Provided for convenience
// so the client can pre-allocate or validate the response without iterating
// the slice.
type UsersResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Users   []User `json:"users"`
}

// MessageResponse is the generic JSON body for operations that return no
// entity (delete, ban, unban) and for error responses.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
