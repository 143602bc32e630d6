package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-tweeter/internal/auth"
	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/internal/utils"
	"github.com/rs/zerolog"
)

// Stage names, in pipeline order.
const (
	StageLogging    = "logging"
	StageJSON       = "json"
	StageURLEncoded = "urlencoded"
	StageCookies    = "cookies"
	StageAuth       = "auth"
	StageCORS       = "cors"
	StageCSRF       = "csrf"
	StageDispatch   = "dispatch"
	StageFallback   = "fallback"
)

const (
	traceIDHeader = "X-Trace-ID"

	contentTypeForm = "application/x-www-form-urlencoded"
)

// idGenerator produces trace identifiers for requests that carry none.
type idGenerator interface {
	Generate() string
}

// loggingStage attaches a request-scoped logger tagged with the trace id
// and writes one access log entry after the rest of the pipeline returns.
func loggingStage(base *logger.Logger, ids idGenerator) Stage {
	return Stage{
		Name: StageLogging,
		Wrap: func(next http.Handler) HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) error {
				traceID := r.Header.Get(traceIDHeader)
				if traceID == "" {
					traceID = ids.Generate()
				}

				l := base.GetChildLogger()
				l.UpdateContext(func(c zerolog.Context) zerolog.Context {
					return c.Str("trace_id", traceID)
				})
				r = r.WithContext(utils.WithTraceID(l.WithContext(r.Context()), traceID))
				r, _ = ensureRequestContext(r)

				w.Header().Set(traceIDHeader, traceID)

				start := time.Now()
				lw := &responseWriter{ResponseWriter: w}

				next.ServeHTTP(lw, r)

				l.Sink(logger.SinkAccess).Info().
					Str("uri", r.RequestURI).
					Str("method", r.Method).
					Int("status", lw.Status()).
					Dur("duration", time.Since(start)).
					Int("size", lw.size).
					Send()

				return nil
			}
		},
	}
}

// jsonStage parses application/json bodies. Only objects and arrays are
// accepted; the raw body is kept on the request context and r.Body is
// replaced with a fresh reader over the same bytes.
func jsonStage(maxBodyBytes int64) Stage {
	return Stage{
		Name: StageJSON,
		Wrap: func(next http.Handler) HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) error {
				if !hasMediaType(r, utils.ContentTypeJSON) || r.Body == nil {
					next.ServeHTTP(w, r)
					return nil
				}

				body, err := readBody(w, r, maxBodyBytes)
				if err != nil {
					return err
				}

				r, rc := ensureRequestContext(r)
				r.Body = io.NopCloser(bytes.NewReader(body))
				r.ContentLength = int64(len(body))

				trimmed := bytes.TrimSpace(body)
				if len(trimmed) > 0 {
					if trimmed[0] != '{' && trimmed[0] != '[' {
						return NewHTTPError(http.StatusBadRequest, "JSON body must be an object or an array")
					}
					if !json.Valid(trimmed) {
						var v any
						decodeErr := json.Unmarshal(trimmed, &v)
						return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Malformed JSON body: %v", decodeErr))
					}
					rc.Body = json.RawMessage(trimmed)
				}

				next.ServeHTTP(w, r)
				return nil
			}
		},
	}
}

// urlencodedStage parses application/x-www-form-urlencoded bodies into flat
// key/value lists.
func urlencodedStage(maxBodyBytes int64) Stage {
	return Stage{
		Name: StageURLEncoded,
		Wrap: func(next http.Handler) HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) error {
				if !hasMediaType(r, contentTypeForm) || r.Body == nil {
					next.ServeHTTP(w, r)
					return nil
				}

				r, rc := ensureRequestContext(r)
				if maxBodyBytes > 0 {
					r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
				}
				if err := r.ParseForm(); err != nil {
					var tooLarge *http.MaxBytesError
					if errors.As(err, &tooLarge) {
						return errPayloadTooLarge.WithCause(err)
					}
					return NewHTTPError(http.StatusBadRequest, "Malformed form body").WithCause(err)
				}
				rc.Form = r.PostForm

				next.ServeHTTP(w, r)
				return nil
			}
		},
	}
}

func cookiesStage() Stage {
	return Stage{
		Name: StageCookies,
		Wrap: func(next http.Handler) HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) error {
				r, rc := ensureRequestContext(r)

				cookies := r.Cookies()
				rc.Cookies = make(map[string]string, len(cookies))
				for _, c := range cookies {
					if _, seen := rc.Cookies[c.Name]; !seen {
						rc.Cookies[c.Name] = c.Value
					}
				}

				next.ServeHTTP(w, r)
				return nil
			}
		},
	}
}

// authStage exposes the strategy registry to route handlers. It never
// accepts or rejects a request.
func authStage(authenticator *auth.Authenticator) Stage {
	return Stage{
		Name: StageAuth,
		Wrap: func(next http.Handler) HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) error {
				r, rc := ensureRequestContext(r)
				rc.Auth = authenticator

				next.ServeHTTP(w, r)
				return nil
			}
		},
	}
}

// fallbackStage ends every request no router claimed.
func fallbackStage() Stage {
	return Stage{
		Name: StageFallback,
		Wrap: func(http.Handler) HandlerFunc {
			return func(http.ResponseWriter, *http.Request) error {
				return errNotFound
			}
		},
	}
}

func hasMediaType(r *http.Request, want string) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.EqualFold(mediaType, want)
}

func readBody(w http.ResponseWriter, r *http.Request, maxBodyBytes int64) ([]byte, error) {
	reader := r.Body
	if maxBodyBytes > 0 {
		reader = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errPayloadTooLarge.WithCause(err)
		}
		return nil, NewHTTPError(http.StatusBadRequest, "Error reading request body").WithCause(err)
	}

	return body, nil
}
