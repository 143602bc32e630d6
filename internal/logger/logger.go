// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// go-tweeter backend.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code passes *Logger by pointer and obtains request-scoped
// loggers via FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Names of the log sinks written by the HTTP pipeline. Every entry of a sink
// carries a "sink" field with one of these values.
const (
	// SinkAccess receives one entry per served request.
	SinkAccess = "access"

	// SinkError receives one entry per error rendered to a client.
	SinkError = "error"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a production-ready *Logger for the given role label
// (e.g. "server", "migrations").
//
// The logger is configured with:
//   - global log level set to Debug (all levels are emitted);
//   - a "role" field set to role;
//   - a timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name
//     instead of the default file:line format.
//
// Output is written to os.Stdout in JSON format.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewConsoleLogger is like [NewLogger] but writes colourised, human-readable
// lines. It is used outside production.
func NewConsoleLogger(role string) *Logger {
	return newLogger(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}, role)
}

func newLogger(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// Sink returns a child logger tagged with the given sink name.
func (l *Logger) Sink(name string) *Logger {
	return &Logger{l.With().Str("sink", name).Logger()}
}

// FromRequest extracts the zerolog.Logger stored in the request's context by
// zerolog's log.Ctx helper and returns it as a *Logger.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
