package service

import "errors"

var (
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)

// ValidationError is a client error with per-field details. It renders as
// 400 with Fields in the "errors" member of the response.
type ValidationError struct {
	Message string
	Fields  map[string]string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
