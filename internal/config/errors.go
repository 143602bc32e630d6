package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrMissingTokenSignKey indicates that no JWT signing key was provided
	// in production.
	ErrMissingTokenSignKey = errors.New("token sign key is required")
	// ErrInvalidCSRFKey indicates a CSRF key of the wrong length, or a
	// missing key in production.
	ErrInvalidCSRFKey = errors.New("invalid CSRF key")
	// ErrUnsupportedDBDriver indicates a database driver other than pgx or sqlite3.
	ErrUnsupportedDBDriver = errors.New("unsupported database driver")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates negative server limits.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
