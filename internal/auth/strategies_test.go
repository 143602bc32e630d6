package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-tweeter/internal/mock"
	"github.com/MKhiriev/go-tweeter/internal/service"
	"github.com/MKhiriev/go-tweeter/models"
)

func TestLocalStrategy(t *testing.T) {
	creds := models.Credentials{Email: "demo@user.io", Password: "password"}

	tests := []struct {
		name        string
		contentType string
		body        string
		expectLogin bool
		wantErr     error
	}{
		{
			name:        "json body",
			contentType: "application/json",
			body:        `{"email":"demo@user.io","password":"password"}`,
			expectLogin: true,
		},
		{
			name:        "json with charset",
			contentType: "application/json; charset=utf-8",
			body:        `{"email":"demo@user.io","password":"password"}`,
			expectLogin: true,
		},
		{
			name:        "urlencoded form",
			contentType: "application/x-www-form-urlencoded",
			body:        "email=demo%40user.io&password=password",
			expectLogin: true,
		},
		{
			name:        "empty json body",
			contentType: "application/json",
			body:        "",
			wantErr:     ErrNoCredentials,
		},
		{
			name:        "empty object",
			contentType: "application/json",
			body:        "{}",
			wantErr:     ErrNoCredentials,
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        "{",
			wantErr:     ErrInvalidCredentials,
		},
		{
			name:        "unsupported content type",
			contentType: "text/plain",
			body:        "demo@user.io:password",
			wantErr:     ErrNoCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := mock.NewMockAuthService(gomock.NewController(t))
			if tt.expectLogin {
				authService.EXPECT().Login(gomock.Any(), creds).Return(models.User{UserID: 1}, nil)
			}

			r := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", tt.contentType)

			user, err := NewLocalStrategy(authService).Authenticate(r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), user.UserID)
		})
	}
}

func TestLocalStrategy_LoginError(t *testing.T) {
	authService := mock.NewMockAuthService(gomock.NewController(t))
	authService.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, &service.ValidationError{Message: "Invalid credentials", Err: service.ErrInvalidCredentials})

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c","password":"nope"}`))
	r.Header.Set("Content-Type", "application/json")

	_, err := NewLocalStrategy(authService).Authenticate(r)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestJWTStrategy(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		authService := mock.NewMockAuthService(gomock.NewController(t))
		gomock.InOrder(
			authService.EXPECT().ParseToken(gomock.Any(), "good").Return(models.Token{UserID: 3}, nil),
			authService.EXPECT().CurrentUser(gomock.Any(), int64(3)).Return(models.User{UserID: 3, Username: "demo"}, nil),
		)

		r := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
		r.Header.Set("Authorization", "Bearer good")

		user, err := NewJWTStrategy(authService).Authenticate(r)
		require.NoError(t, err)
		assert.Equal(t, "demo", user.Username)
	})

	t.Run("no header", func(t *testing.T) {
		authService := mock.NewMockAuthService(gomock.NewController(t))

		_, err := NewJWTStrategy(authService).Authenticate(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, ErrNoCredentials)
	})

	t.Run("malformed header", func(t *testing.T) {
		authService := mock.NewMockAuthService(gomock.NewController(t))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Token abc")

		_, err := NewJWTStrategy(authService).Authenticate(r)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejected token", func(t *testing.T) {
		authService := mock.NewMockAuthService(gomock.NewController(t))
		authService.EXPECT().ParseToken(gomock.Any(), "bad").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer bad")

		_, err := NewJWTStrategy(authService).Authenticate(r)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, service.ErrTokenIsExpiredOrInvalid)
	})

	t.Run("owner deleted", func(t *testing.T) {
		authService := mock.NewMockAuthService(gomock.NewController(t))
		authService.EXPECT().ParseToken(gomock.Any(), "good").Return(models.Token{UserID: 3}, nil)
		authService.EXPECT().CurrentUser(gomock.Any(), int64(3)).Return(models.User{}, errors.New("no user was found"))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer good")

		_, err := NewJWTStrategy(authService).Authenticate(r)
		assert.Error(t, err)
	})
}
