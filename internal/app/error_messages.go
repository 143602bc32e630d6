// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-tweeter service layer and HTTP pipeline.
//
// All Msg* constants are human-readable message strings that are written into
// the "message" or "errors" members of error responses. Keeping them in one
// place keeps the wording the frontend matches on consistent.
package app

const (
	// MsgNotFound is returned for every request no router handles.
	MsgNotFound = "Not Found"

	// MsgInternalServerError replaces the message of recovered panics.
	MsgInternalServerError = "Internal Server Error"

	// MsgValidationError is the summary of a payload that failed field
	// validation; per-field messages travel in "errors".
	MsgValidationError = "Validation Error"

	// MsgInvalidCredentials is returned when a login email and password do
	// not match a registered user.
	MsgInvalidCredentials = "Invalid credentials"

	// MsgAlreadyRegisteredWith prefixes the field name of a duplicate
	// registration, e.g. "A user has already registered with this email".
	MsgAlreadyRegisteredWith = "A user has already registered with this "

	// MsgInvalidCSRFToken is returned when an unsafe request carries no
	// valid CSRF token.
	MsgInvalidCSRFToken = "invalid csrf token"

	// MsgTooManyRequests is returned by rate-limited routes.
	MsgTooManyRequests = "Too Many Requests"

	// MsgPayloadTooLarge is returned when a body exceeds the size limit.
	MsgPayloadTooLarge = "Payload Too Large"

	MsgUserNotFound   = "User not found"
	MsgNoUserWithID   = "No user found with that id"
	MsgTweetNotFound  = "Tweet not found"
	MsgNoTweetWithID  = "No tweet found with that id"
	MsgInvalidID      = "Invalid id"
	MsgInvalidPayload = "Invalid request body"
)
