// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for request payloads.
//
// A Validator checks a value and, optionally, only the named fields of it.
// Field-level failures are reported together as [FieldErrors] so a client
// can show every problem at once.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
