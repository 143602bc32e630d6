package models

// AuthResponse is returned by the registration and login routes.
type AuthResponse struct {
	// User is the authenticated account.
	User User `json:"user"`

	// Token is the signed JWT the client sends back in the
	// "Authorization: Bearer" header.
	Token string `json:"token"`
}

// CSRFTokenResponse is returned by the CSRF bootstrap routes.
type CSRFTokenResponse struct {
	Token string `json:"CSRF-Token"`
}

// MessageResponse is a minimal informational response body.
type MessageResponse struct {
	Message string `json:"message"`
}
