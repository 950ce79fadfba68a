package model

// Credential is one row of the login export.
type Credential struct {
	ID       string
	Password string
}

// LoginRequest is the JSON login payload. Presence is checked by the
// handler so the error body can match the login response shape.
type LoginRequest struct {
	LoginID       string `json:"loginId"`
	LoginPassword string `json:"loginPassword"`
}

// LoginResponse is returned by the JSON login endpoint.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
