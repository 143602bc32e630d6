package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-tweeter/internal/auth"
)

type requestContextKey struct{}

// RequestContext is the per-request state filled in by the pipeline stages.
// One value is created per request and shared by every stage and route
// handler that sees that request.
type RequestContext struct {
	// Cookies maps cookie names to values. The first occurrence of a name
	// wins.
	Cookies map[string]string

	// Body is the raw JSON body, set only for application/json requests
	// with a non-empty body.
	Body json.RawMessage

	// Form holds the urlencoded body fields.
	Form url.Values

	// Auth is the authentication strategy registry.
	Auth *auth.Authenticator

	csrfToken func() string

	// err and csrfErr carry failures from handlers that cannot return
	// them directly back to the stage that renders them.
	err     error
	csrfErr error
}

// RequestContextFrom returns the request state stored in ctx, if any.
func RequestContextFrom(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc, ok
}

// ensureRequestContext returns r together with its request state, attaching
// a new empty state first when r has none.
func ensureRequestContext(r *http.Request) (*http.Request, *RequestContext) {
	if rc, ok := RequestContextFrom(r.Context()); ok {
		return r, rc
	}

	rc := &RequestContext{}
	return r.WithContext(context.WithValue(r.Context(), requestContextKey{}, rc)), rc
}

// CSRFToken returns a fresh token bound to the request's CSRF cookie. Every
// call may return a different string; all of them validate.
func (rc *RequestContext) CSRFToken() (string, error) {
	if rc.csrfToken == nil {
		return "", ErrCSRFUnavailable
	}
	return rc.csrfToken(), nil
}

// DecodeBody unmarshals the parsed JSON body into dst.
func (rc *RequestContext) DecodeBody(dst any) error {
	if len(rc.Body) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(rc.Body, dst)
}

func (rc *RequestContext) takeErr() error {
	err := rc.err
	rc.err = nil
	return err
}

func (rc *RequestContext) takeCSRFErr() error {
	err := rc.csrfErr
	rc.csrfErr = nil
	return err
}
