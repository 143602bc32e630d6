package auth

import "errors"

var (
	// ErrUnknownStrategy is returned when Authenticate is asked for a name
	// that was never registered with Use.
	ErrUnknownStrategy = errors.New("unknown authentication strategy")

	// ErrNoCredentials is returned when the request carries nothing the
	// strategy can check.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials is returned when credentials are present but
	// rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
