package handler

import (
	"github.com/MKhiriev/go-tweeter/internal/auth"
	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/MKhiriev/go-tweeter/internal/handler/http"
	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers registers the local and jwt authentication strategies on top
// of the auth service and creates the HTTP handler.
func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if services == nil {
		return nil, errNoServices
	}
	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	authenticator := NewAuthenticator(services.AuthService)

	return &Handlers{
		HTTP: http.NewHandler(services, authenticator, cfg.App, cfg.Server, logger),
	}, nil
}

// NewAuthenticator returns a registry with the built-in strategies.
func NewAuthenticator(authService service.AuthService) *auth.Authenticator {
	return auth.NewAuthenticator().
		Use(auth.StrategyLocal, auth.NewLocalStrategy(authService)).
		Use(auth.StrategyJWT, auth.NewJWTStrategy(authService))
}
