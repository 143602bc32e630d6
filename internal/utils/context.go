// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and trace ID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey is the key used to store the request trace identifier in the context.
//
// Example of writing a value to the context:
//
//	ctx := utils.WithTraceID(ctx, "0192f0c4-...")
var TraceIDCtxKey = contextKey("traceID")

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

// GetTraceIDFromContext retrieves the trace identifier from the context.
//
// Returns the trace ID and an ok flag:
//   - ok == true  — value is found, is a string and is not empty
//   - ok == false — value is missing, empty or has an unexpected type
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok && traceID != ""
}
