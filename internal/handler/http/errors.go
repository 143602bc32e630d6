// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tweeter/internal/app"
)

var (
	// ErrCSRFUnavailable is returned by [RequestContext.CSRFToken] when the
	// request did not pass through the CSRF stage.
	ErrCSRFUnavailable = errors.New("csrf protection is not initialized for this request")

	// ErrAuthUnavailable is returned when a route needs the strategy
	// registry but the authentication stage did not run.
	ErrAuthUnavailable = errors.New("authentication is not initialized for this request")

	// ErrEmptyBody is returned by [RequestContext.DecodeBody] when no JSON
	// body was parsed for the request.
	ErrEmptyBody = errors.New("request has no JSON body")
)

// HTTPError is the error envelope rendered to clients. Its JSON form is the
// response body of every failed request.
type HTTPError struct {
	// Message is a human-readable summary of the failure.
	Message string `json:"message"`

	// StatusCode is the HTTP status of the response. Zero renders as 500.
	StatusCode int `json:"statusCode"`

	// Errors is an optional payload, usually per-field messages, passed
	// through to the client untouched.
	Errors any `json:"errors,omitempty"`

	cause error
}

// NewHTTPError returns an envelope with the given status and message.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{Message: message, StatusCode: statusCode}
}

// WithErrors returns a copy of e carrying errs as its payload.
func (e *HTTPError) WithErrors(errs any) *HTTPError {
	c := *e
	c.Errors = errs
	return &c
}

// WithCause returns a copy of e wrapping err. The cause is logged but never
// rendered.
func (e *HTTPError) WithCause(err error) *HTTPError {
	c := *e
	c.cause = err
	return &c
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Status returns StatusCode, defaulting to 500 when unset.
func (e *HTTPError) Status() int {
	if e.StatusCode == 0 {
		return http.StatusInternalServerError
	}
	return e.StatusCode
}

var (
	errNotFound        = NewHTTPError(http.StatusNotFound, app.MsgNotFound)
	errTooManyRequests = NewHTTPError(http.StatusTooManyRequests, app.MsgTooManyRequests)
	errPayloadTooLarge = NewHTTPError(http.StatusRequestEntityTooLarge, app.MsgPayloadTooLarge)
	errInvalidCSRF     = NewHTTPError(http.StatusForbidden, app.MsgInvalidCSRFToken)
	errInternal        = NewHTTPError(http.StatusInternalServerError, app.MsgInternalServerError)
)
