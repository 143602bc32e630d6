package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// PostgresErrorClassifier implements [ErrorClassifier] for the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// postgresUniqueConstraints maps constraint names declared in
// migrations/postgres to the column they protect.
var postgresUniqueConstraints = map[string]string{
	"users_email_key":    "email",
	"users_username_key": "username",
}

// UniqueViolation implements [ErrorClassifier]. It unwraps err as a
// *pgconn.PgError and checks for SQLSTATE 23505.
func (c *PostgresErrorClassifier) UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}

	return postgresUniqueConstraints[pgErr.ConstraintName], true
}

// SQLiteErrorClassifier implements [ErrorClassifier] for go-sqlite3.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// UniqueViolation implements [ErrorClassifier]. SQLite reports the column in
// the message: "UNIQUE constraint failed: users.email".
func (c *SQLiteErrorClassifier) UniqueViolation(err error) (string, bool) {
	var liteErr sqlite3.Error
	if !errors.As(err, &liteErr) || liteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return "", false
	}

	_, column, found := strings.Cut(liteErr.Error(), "users.")
	if !found {
		return "", true
	}

	return strings.TrimSpace(column), true
}
