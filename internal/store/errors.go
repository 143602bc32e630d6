package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an insert collides with an
	// existing username or email.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrNoUserWasFound is returned when a query expected to match one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrTweetNotFound is returned when no tweet has the requested ID.
	ErrTweetNotFound = errors.New("tweet was not found")

	// ErrUnsupportedDriver is returned by [NewDB] for unknown driver names.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRows is returned when scanning a result set fails mid-iteration.
	ErrScanningRows = errors.New("failed to scan rows")
)

// DuplicateFieldError is a unique-constraint failure on a users column.
// It unwraps to [ErrUserAlreadyExists].
type DuplicateFieldError struct {
	// Field is "email", "username", or "" when the driver did not say.
	Field string
}

func (e *DuplicateFieldError) Error() string {
	if e.Field == "" {
		return ErrUserAlreadyExists.Error()
	}
	return fmt.Sprintf("%s: duplicate %s", ErrUserAlreadyExists, e.Field)
}

func (e *DuplicateFieldError) Unwrap() error {
	return ErrUserAlreadyExists
}
