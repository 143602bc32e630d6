// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Defaults applied by [StructuredConfig.applyDefaults] to fields that no
// source provided.
const (
	DefaultHTTPAddress     = "localhost:5000"
	DefaultTokenIssuer     = "go-tweeter"
	DefaultTokenDuration   = time.Hour
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 100 << 10
	DefaultBcryptCost      = 10
	DefaultDBDriver        = DriverSQLite
	DefaultSQLiteDSN       = "file:tweeter.db?_foreign_keys=on"
	DefaultLoginRateBurst  = 5
	DefaultDevOrigin       = "localhost:3000"

	// CSRFKeyLength is the required length of [App.CSRFKey].
	CSRFKeyLength = 32
)

// Supported values of [DB.Driver].
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// applyDefaults fills fields left empty by every configuration source.
//
// Outside production, missing secrets are replaced by random per-process
// values so a developer can start the server with no configuration at all.
// Tokens and CSRF cookies issued with such secrets do not survive a restart.
func (cfg *StructuredConfig) applyDefaults() error {
	policy := cfg.App.SecurityPolicy()

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.BcryptCost == 0 {
		cfg.App.BcryptCost = DefaultBcryptCost
	}

	if !policy.IsProduction {
		if cfg.App.TokenSignKey == "" {
			key, err := randomKey(CSRFKeyLength)
			if err != nil {
				return err
			}
			cfg.App.TokenSignKey = key
		}
		if cfg.App.CSRFKey == "" {
			key, err := randomKey(CSRFKeyLength)
			if err != nil {
				return err
			}
			cfg.App.CSRFKey = key
		}
		if len(cfg.App.TrustedOrigins) == 0 {
			cfg.App.TrustedOrigins = []string{DefaultDevOrigin}
		}
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Server.LoginRateLimit > 0 && cfg.Server.LoginRateBurst == 0 {
		cfg.Server.LoginRateBurst = DefaultLoginRateBurst
	}

	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DefaultDBDriver
	}
	if cfg.Storage.DB.DSN == "" && cfg.Storage.DB.Driver == DriverSQLite {
		cfg.Storage.DB.DSN = DefaultSQLiteDSN
	}

	return nil
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrMissingTokenSignKey
	}

	if len(cfg.App.CSRFKey) != CSRFKeyLength {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidCSRFKey, len(cfg.App.CSRFKey), CSRFKeyLength)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDBDriver, cfg.Storage.DB.Driver)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.MaxBodyBytes < 0 || cfg.Server.LoginRateLimit < 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}

func randomKey(n int) (string, error) {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating random key: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}

	return string(buf), nil
}
