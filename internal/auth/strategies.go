package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/MKhiriev/go-tweeter/internal/service"
	"github.com/MKhiriev/go-tweeter/internal/utils"
	"github.com/MKhiriev/go-tweeter/models"
)

// NewLocalStrategy checks an email and password taken from a JSON body or,
// for urlencoded requests, from the parsed form.
func NewLocalStrategy(authService service.AuthService) Strategy {
	return StrategyFunc(func(r *http.Request) (models.User, error) {
		creds, err := credentialsFromRequest(r)
		if err != nil {
			return models.User{}, err
		}

		return authService.Login(r.Context(), creds)
	})
}

// NewJWTStrategy resolves the owner of the bearer token in the
// Authorization header.
func NewJWTStrategy(authService service.AuthService) Strategy {
	return StrategyFunc(func(r *http.Request) (models.User, error) {
		header := r.Header.Get("Authorization")
		if header == "" {
			return models.User{}, ErrNoCredentials
		}

		tokenString, err := utils.ParseBearerToken(header)
		if err != nil {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}

		ctx := r.Context()
		token, err := authService.ParseToken(ctx, tokenString)
		if err != nil {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}

		return authService.CurrentUser(ctx, token.UserID)
	})
}

func credentialsFromRequest(r *http.Request) (models.Credentials, error) {
	var creds models.Credentials

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if r.Body == nil {
			return creds, ErrNoCredentials
		}
		err := json.NewDecoder(r.Body).Decode(&creds)
		if errors.Is(err, io.EOF) {
			return creds, ErrNoCredentials
		}
		if err != nil {
			return creds, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return creds, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		creds.Email = r.PostForm.Get("email")
		creds.Password = r.PostForm.Get("password")
	default:
		return creds, ErrNoCredentials
	}

	if creds.Email == "" && creds.Password == "" {
		return creds, ErrNoCredentials
	}

	return creds, nil
}
