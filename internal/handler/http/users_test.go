package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/MKhiriev/go-tweeter/internal/service"
	"github.com/MKhiriev/go-tweeter/internal/store"
	"github.com/MKhiriev/go-tweeter/models"
)

var demoUser = models.User{
	UserID:    1,
	Username:  "demo",
	Email:     "demo@user.io",
	CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
}

// csrfPost builds an unsafe request carrying a valid CSRF token.
func csrfPost(t *testing.T, app http.Handler, path, contentType string, body io.Reader) *http.Request {
	t.Helper()

	token, secret := fetchCSRFToken(t, app, nil)

	req := httptest.NewRequest(http.MethodPost, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(csrfHeaderName, token)
	req.AddCookie(secret)
	return req
}

func authResponseJSON(t *testing.T, user models.User, token string) string {
	t.Helper()
	b, err := json.Marshal(models.AuthResponse{User: user, Token: token})
	require.NoError(t, err)
	return string(b)
}

func TestUsers_Index(t *testing.T) {
	th := newTestHandler(t, config.Server{})

	rec := serve(th.app, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"GET /api/users"}`, rec.Body.String())
}

func TestUsers_Register(t *testing.T) {
	creds := models.Credentials{Username: "demo", Email: "demo@user.io", Password: "password"}

	t.Run("json body", func(t *testing.T) {
		th := newTestHandler(t, config.Server{})
		th.auth.EXPECT().RegisterUser(gomock.Any(), creds).Return(demoUser, nil)
		th.auth.EXPECT().CreateToken(gomock.Any(), demoUser).Return(models.Token{SignedString: "signed", UserID: 1}, nil)

		req := csrfPost(t, th.app, "/api/users/register", "application/json",
			strings.NewReader(`{"username":"demo","email":"demo@user.io","password":"password"}`))
		rec := serve(th.app, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, authResponseJSON(t, demoUser, "signed"), rec.Body.String())
		assert.Equal(t, "Bearer signed", rec.Header().Get("Authorization"))
	})

	t.Run("urlencoded body", func(t *testing.T) {
		th := newTestHandler(t, config.Server{})
		th.auth.EXPECT().RegisterUser(gomock.Any(), creds).Return(demoUser, nil)
		th.auth.EXPECT().CreateToken(gomock.Any(), demoUser).Return(models.Token{SignedString: "signed"}, nil)

		req := csrfPost(t, th.app, "/api/users/register", "application/x-www-form-urlencoded",
			strings.NewReader("username=demo&email=demo%40user.io&password=password"))
		rec := serve(th.app, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("validation failure", func(t *testing.T) {
		th := newTestHandler(t, config.Server{})
		th.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{}, &service.ValidationError{
			Message: "Validation Error",
			Fields:  map[string]string{"email": "A user has already registered with this email"},
			Err:     store.ErrUserAlreadyExists,
		})

		req := csrfPost(t, th.app, "/api/users/register", "application/json",
			strings.NewReader(`{"username":"demo","email":"demo@user.io","password":"password"}`))
		rec := serve(th.app, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{
			"message": "Validation Error",
			"statusCode": 400,
			"errors": {"email": "A user has already registered with this email"}
		}`, rec.Body.String())
	})

	t.Run("body of the wrong shape", func(t *testing.T) {
		th := newTestHandler(t, config.Server{})

		req := csrfPost(t, th.app, "/api/users/register", "application/json", strings.NewReader(`[1, 2]`))
		rec := serve(th.app, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid request body")
	})

	t.Run("token creation failure", func(t *testing.T) {
		th := newTestHandler(t, config.Server{})
		th.auth.EXPECT().RegisterUser(gomock.Any(), creds).Return(demoUser, nil)
		th.auth.EXPECT().CreateToken(gomock.Any(), demoUser).Return(models.Token{}, service.ErrTokenCreationFailed)

		req := csrfPost(t, th.app, "/api/users/register", "application/json",
			strings.NewReader(`{"username":"demo","email":"demo@user.io","password":"password"}`))
		rec := serve(th.app, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("without csrf token", func(t *testing.T) {
		th := newTestHandler(t, config.Server{})

		req := httptest.NewRequest(http.MethodPost, "/api/users/register",
			strings.NewReader(`{"username":"demo","email":"demo@user.io","password":"password"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := serve(th.app, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestUsers_Login(t *testing.T) {
	creds := models.Credentials{Email: "demo@user.io", Password: "password"}

	t.Run("success", func(t *testing.T) {
		th := newTestHandler(t, config.Server{})
		th.auth.EXPECT().Login(gomock.Any(), creds).Return(demoUser, nil)
		th.auth.EXPECT().CreateToken(gomock.Any(), demoUser).Return(models.Token{SignedString: "signed"}, nil)

		req := csrfPost(t, th.app, "/api/users/login", "application/json",
			strings.NewReader(`{"email":"demo@user.io","password":"password"}`))
		rec := serve(th.app, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, authResponseJSON(t, demoUser, "signed"), rec.Body.String())
	})

	t.Run("form body", func(t *testing.T) {
		th := newTestHandler(t, config.Server{})
		th.auth.EXPECT().Login(gomock.Any(), creds).Return(demoUser, nil)
		th.auth.EXPECT().CreateToken(gomock.Any(), demoUser).Return(models.Token{SignedString: "signed"}, nil)

		req := csrfPost(t, th.app, "/api/users/login", "application/x-www-form-urlencoded",
			strings.NewReader("email=demo%40user.io&password=password"))
		rec := serve(th.app, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("no credentials", func(t *testing.T) {
		th := newTestHandler(t, config.Server{})

		req := csrfPost(t, th.app, "/api/users/login", "application/json", strings.NewReader(`{}`))
		rec := serve(th.app, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{
			"message": "Invalid credentials",
			"statusCode": 400,
			"errors": {"email": "Invalid credentials"}
		}`, rec.Body.String())
	})

	t.Run("rejected credentials", func(t *testing.T) {
		th := newTestHandler(t, config.Server{})
		th.auth.EXPECT().Login(gomock.Any(), creds).Return(models.User{}, &service.ValidationError{
			Message: "Invalid credentials",
			Fields:  map[string]string{"email": "Invalid credentials"},
			Err:     service.ErrInvalidCredentials,
		})

		req := csrfPost(t, th.app, "/api/users/login", "application/json",
			strings.NewReader(`{"email":"demo@user.io","password":"password"}`))
		rec := serve(th.app, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{
			"message": "Invalid credentials",
			"statusCode": 400,
			"errors": {"email": "Invalid credentials"}
		}`, rec.Body.String())
	})

	t.Run("rate limited", func(t *testing.T) {
		th := newTestHandler(t, config.Server{LoginRateLimit: 0.001, LoginRateBurst: 1})
		th.auth.EXPECT().Login(gomock.Any(), creds).Return(demoUser, nil).Times(1)
		th.auth.EXPECT().CreateToken(gomock.Any(), demoUser).Return(models.Token{SignedString: "signed"}, nil).Times(1)

		body := `{"email":"demo@user.io","password":"password"}`

		rec := serve(th.app, csrfPost(t, th.app, "/api/users/login", "application/json", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = serve(th.app, csrfPost(t, th.app, "/api/users/login", "application/json", strings.NewReader(body)))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.JSONEq(t, `{"message":"Too Many Requests","statusCode":429}`, rec.Body.String())
	})
}

func TestUsers_Current(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(th *testHandler)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no token",
			wantStatus: http.StatusOK,
			wantBody:   `null`,
		},
		{
			name:       "malformed header",
			header:     "Token abc",
			wantStatus: http.StatusOK,
			wantBody:   `null`,
		},
		{
			name:   "invalid token",
			header: "Bearer expired",
			setup: func(th *testHandler) {
				th.auth.EXPECT().ParseToken(gomock.Any(), "expired").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
			},
			wantStatus: http.StatusOK,
			wantBody:   `null`,
		},
		{
			name:   "deleted user",
			header: "Bearer valid",
			setup: func(th *testHandler) {
				th.auth.EXPECT().ParseToken(gomock.Any(), "valid").Return(models.Token{UserID: 1}, nil)
				th.auth.EXPECT().CurrentUser(gomock.Any(), int64(1)).Return(models.User{}, store.ErrNoUserWasFound)
			},
			wantStatus: http.StatusOK,
			wantBody:   `null`,
		},
		{
			name:   "store failure",
			header: "Bearer valid",
			setup: func(th *testHandler) {
				th.auth.EXPECT().ParseToken(gomock.Any(), "valid").Return(models.Token{UserID: 1}, nil)
				th.auth.EXPECT().CurrentUser(gomock.Any(), int64(1)).Return(models.User{}, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"connection reset","statusCode":500}`,
		},
		{
			name:   "valid token",
			header: "Bearer valid",
			setup: func(th *testHandler) {
				th.auth.EXPECT().ParseToken(gomock.Any(), "valid").Return(models.Token{UserID: 1}, nil)
				th.auth.EXPECT().CurrentUser(gomock.Any(), int64(1)).
					DoAndReturn(func(ctx context.Context, id int64) (models.User, error) {
						return demoUser, nil
					})
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"_id":1,"username":"demo","email":"demo@user.io","createdAt":"2026-01-02T03:04:05Z"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandler(t, config.Server{})
			if tt.setup != nil {
				tt.setup(th)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(th.app, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
