package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tweeter/internal/auth"
	"github.com/MKhiriev/go-tweeter/internal/service"
	"github.com/MKhiriev/go-tweeter/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	auth.ErrNoCredentials:      http.StatusUnauthorized,
	auth.ErrInvalidCredentials: http.StatusUnauthorized,
	auth.ErrUnknownStrategy:    http.StatusInternalServerError,

	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:    http.StatusNotFound,
	store.ErrTweetNotFound:     http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// toHTTPError converts any error into the envelope rendered to the client.
// Envelopes pass through with their status defaulted, validation errors
// become 400 with their field messages, known sentinels get their mapped
// status and everything else is a 500 carrying the error's message.
func toHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		out := *httpErr
		out.StatusCode = httpErr.Status()
		return &out
	}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		out := NewHTTPError(http.StatusBadRequest, validationErr.Message)
		if len(validationErr.Fields) > 0 {
			out.Errors = validationErr.Fields
		}
		return out
	}

	return NewHTTPError(statusFromError(err), err.Error())
}
