package service

import (
	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/internal/store"
)

type Services struct {
	AuthService  AuthService
	TweetService TweetService
}

// NewServices wires every service to its repositories. AuthService is
// wrapped with payload validation.
func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	authService := NewAuthService(storages.UserRepository, cfg, logger)

	return &Services{
		AuthService:  NewAuthValidationService().Wrap(authService),
		TweetService: NewTweetService(storages.TweetRepository, storages.UserRepository, logger),
	}
}
