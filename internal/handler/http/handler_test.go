package http

import (
	"net/http"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-tweeter/internal/auth"
	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/internal/mock"
	"github.com/MKhiriev/go-tweeter/internal/service"
)

type testHandler struct {
	app    http.Handler
	auth   *mock.MockAuthService
	tweets *mock.MockTweetService
}

// newTestHandler builds the full application on top of mocked services,
// with the real local and jwt strategies.
func newTestHandler(t *testing.T, server config.Server) *testHandler {
	t.Helper()

	ctrl := gomock.NewController(t)
	authService := mock.NewMockAuthService(ctrl)
	tweetService := mock.NewMockTweetService(ctrl)

	authenticator := auth.NewAuthenticator().
		Use(auth.StrategyLocal, auth.NewLocalStrategy(authService)).
		Use(auth.StrategyJWT, auth.NewJWTStrategy(authService))

	h := NewHandler(
		&service.Services{AuthService: authService, TweetService: tweetService},
		authenticator,
		config.App{Environment: "development", CSRFKey: string(testCSRFKey)},
		server,
		logger.Nop(),
	)

	return &testHandler{app: h.Init(), auth: authService, tweets: tweetService}
}
