// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the SQL schema of every supported database
// dialect and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

var (
	// ErrNilDB is returned by Migrate when no database handle is given.
	ErrNilDB = errors.New("migration error: db is nil")

	// ErrUnsupportedDriver is returned for drivers without an embedded schema.
	ErrUnsupportedDriver = errors.New("migration error: unsupported driver")
)

// dirs maps a database/sql driver name to its migration directory.
var dirs = map[string]string{
	"pgx":     "postgres",
	"sqlite3": "sqlite",
}

// goose keeps the base FS and dialect in package state.
var gooseMu sync.Mutex

// Migrate applies all pending migrations for driver ("pgx" or "sqlite3").
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	if db == nil {
		return ErrNilDB
	}

	dir, ok := dirs[driver]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
