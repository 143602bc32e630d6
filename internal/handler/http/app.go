package http

import (
	"net/http"

	"github.com/MKhiriev/go-tweeter/internal/auth"
	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/internal/utils"
)

// Options are the construction-time settings of the pipeline.
type Options struct {
	// Policy decides whether CORS is enabled and how the CSRF cookie is
	// scoped.
	Policy config.SecurityPolicy

	// CSRFKey authenticates the CSRF secret cookie. It must be 32 bytes.
	CSRFKey []byte

	// TrustedOrigins are extra "host:port" origins allowed to send unsafe
	// requests.
	TrustedOrigins []string

	// MaxBodyBytes caps JSON and urlencoded bodies. Zero means no limit.
	MaxBodyBytes int64

	// Authenticator is exposed to route handlers. A nil value installs an
	// empty registry.
	Authenticator *auth.Authenticator
}

// Routers are the pre-built routers mounted by the dispatch stage. A nil
// router leaves its prefix to the fallback.
type Routers struct {
	Users  http.Handler
	Tweets http.Handler
	CSRF   http.Handler
}

// Stages returns the ordered stage list for opts. The CORS stage is absent
// in production.
func Stages(opts Options, routers Routers, log *logger.Logger) []Stage {
	authenticator := opts.Authenticator
	if authenticator == nil {
		authenticator = auth.NewAuthenticator()
	}

	stages := []Stage{
		loggingStage(log, utils.NewUUIDGenerator()),
		jsonStage(opts.MaxBodyBytes),
		urlencodedStage(opts.MaxBodyBytes),
		cookiesStage(),
		authStage(authenticator),
	}

	if !opts.Policy.IsProduction {
		stages = append(stages, corsStage())
	}

	stages = append(stages,
		csrfStage(opts.CSRFKey, opts.Policy, opts.TrustedOrigins),
		dispatchStage([]Mount{
			{Prefix: PrefixUsers, Handler: routers.Users},
			{Prefix: PrefixTweets, Handler: routers.Tweets},
			{Prefix: PrefixCSRF, Handler: routers.CSRF},
		}),
		fallbackStage(),
	)

	return stages
}

// NewApp assembles the request pipeline around the given routers.
//
// Example usage:
//
//	app := http.NewApp(http.Options{
//		Policy:  cfg.App.SecurityPolicy(),
//		CSRFKey: []byte(cfg.App.CSRFKey),
//	}, http.Routers{Users: users, Tweets: tweets, CSRF: csrfRouter}, log)
func NewApp(opts Options, routers Routers, log *logger.Logger) *Pipeline {
	return Compose(Stages(opts, routers, log), log)
}
