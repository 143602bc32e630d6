package http

import (
	"net/http"

	"github.com/MKhiriev/go-tweeter/internal/auth"
	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/internal/service"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

type Handler struct {
	services      *service.Services
	authenticator *auth.Authenticator

	app    config.App
	server config.Server

	loginLimiter *rate.Limiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, authenticator *auth.Authenticator, app config.App, server config.Server, logger *logger.Logger) *Handler {
	limit := rate.Inf
	if server.LoginRateLimit > 0 {
		limit = rate.Limit(server.LoginRateLimit)
	}

	logger.Info().Strs("strategies", authenticator.Strategies()).Msg("http handler created")
	return &Handler{
		services:      services,
		authenticator: authenticator,
		app:           app,
		server:        server,
		loginLimiter:  rate.NewLimiter(limit, server.LoginRateBurst),
		logger:        logger,
	}
}

// Init builds the routers and assembles them into the request pipeline.
func (h *Handler) Init() http.Handler {
	return NewApp(Options{
		Policy:         h.app.SecurityPolicy(),
		CSRFKey:        []byte(h.app.CSRFKey),
		TrustedOrigins: h.app.TrustedOrigins,
		MaxBodyBytes:   h.server.MaxBodyBytes,
		Authenticator:  h.authenticator,
	}, Routers{
		Users:  h.usersRouter(),
		Tweets: h.tweetsRouter(),
		CSRF:   h.csrfRouter(),
	}, h.logger)
}

func (h *Handler) usersRouter() chi.Router {
	router := chi.NewRouter()

	router.Get("/", Route(h.usersIndex))
	router.Post("/register", Route(h.register))
	router.Post("/login", Route(h.rateLimited(h.login)))
	router.Get("/current", Route(h.currentUser))

	return router
}

func (h *Handler) tweetsRouter() chi.Router {
	router := chi.NewRouter()

	router.Get("/", Route(h.listTweets))
	router.Get("/user/{userID}", Route(h.listUserTweets))
	router.Get("/{tweetID}", Route(h.getTweet))

	return router
}

func (h *Handler) csrfRouter() chi.Router {
	router := chi.NewRouter()

	router.Get("/restore", Route(h.csrfToken))
	router.Get("/token", Route(h.csrfToken))

	return router
}
