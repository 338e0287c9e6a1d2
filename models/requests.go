package models

// CredentialsRequest is the JSON body accepted by the register and login
// endpoints.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ValidateTokenRequest is the JSON body accepted by the token validation
// endpoint. The token itself travels in the Authorization header; the
// username is a second binding check against the embedded claims.
type ValidateTokenRequest struct {
	Username string `json:"username"`
}
