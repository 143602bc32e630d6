package http

import (
	"net/http"

	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/gorilla/csrf"
	"github.com/rs/cors"
)

// Names used by the CSRF protection. The frontend reads the token from the
// CSRF-TOKEN cookie and echoes it in the CSRF-Token header on unsafe
// requests.
const (
	csrfCookieName      = "_csrf"
	csrfFieldName       = "_csrf"
	csrfHeaderName      = "CSRF-Token"
	csrfTokenCookieName = "CSRF-TOKEN"
)

// corsStage answers preflight requests and decorates responses for any
// origin. It is only part of the pipeline outside production.
func corsStage() Stage {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	})

	return Stage{
		Name: StageCORS,
		Wrap: func(next http.Handler) HandlerFunc {
			h := c.Handler(next)
			return func(w http.ResponseWriter, r *http.Request) error {
				h.ServeHTTP(w, r)
				return nil
			}
		},
	}
}

// csrfSameSite is the SameSite attribute of both CSRF cookies. Outside
// production the attribute is omitted.
func csrfSameSite(policy config.SecurityPolicy) http.SameSite {
	if policy.IsProduction {
		return http.SameSiteLaxMode
	}
	return http.SameSiteDefaultMode
}

// csrfStage binds tokens to an HttpOnly secret cookie and rejects unsafe
// requests without a matching token with 403.
//
// Outside production plain-HTTP requests are marked as such, so the strict
// Referer check meant for TLS connections does not apply.
func csrfStage(key []byte, policy config.SecurityPolicy, trustedOrigins []string) Stage {
	sameSite := csrf.SameSiteDefaultMode
	if policy.IsProduction {
		sameSite = csrf.SameSiteLaxMode
	}

	protect := csrf.Protect(key,
		csrf.Secure(policy.IsProduction),
		csrf.HttpOnly(true),
		csrf.SameSite(sameSite),
		csrf.Path("/"),
		csrf.CookieName(csrfCookieName),
		csrf.FieldName(csrfFieldName),
		csrf.RequestHeader(csrfHeaderName),
		csrf.TrustedOrigins(trustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rc, ok := RequestContextFrom(r.Context()); ok {
				rc.csrfErr = errInvalidCSRF.WithCause(csrf.FailureReason(r))
			}
		})),
	)

	return Stage{
		Name: StageCSRF,
		Wrap: func(next http.Handler) HandlerFunc {
			h := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if rc, ok := RequestContextFrom(r.Context()); ok {
					rc.csrfToken = func() string { return csrf.Token(r) }
				}
				next.ServeHTTP(w, r)
			}))

			return func(w http.ResponseWriter, r *http.Request) error {
				r, rc := ensureRequestContext(r)
				if !policy.IsProduction && r.TLS == nil {
					r = csrf.PlaintextHTTPRequest(r)
				}

				h.ServeHTTP(w, r)
				return rc.takeCSRFErr()
			}
		},
	}
}
