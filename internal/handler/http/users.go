package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tweeter/internal/app"
	"github.com/MKhiriev/go-tweeter/internal/auth"
	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/internal/store"
	"github.com/MKhiriev/go-tweeter/internal/utils"
	"github.com/MKhiriev/go-tweeter/models"
)

var errInvalidLogin = NewHTTPError(http.StatusBadRequest, app.MsgInvalidCredentials).
	WithErrors(map[string]string{"email": app.MsgInvalidCredentials})

func (h *Handler) usersIndex(w http.ResponseWriter, r *http.Request) error {
	_, err := utils.WriteJSON(w, models.MessageResponse{Message: "GET " + PrefixUsers}, http.StatusOK)
	return err
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	creds, err := credentialsFromRequest(r)
	if err != nil {
		return err
	}

	user, err := h.services.AuthService.RegisterUser(ctx, creds)
	if err != nil {
		return err
	}

	return h.writeAuthResponse(w, r, user)
}

// login checks an email and password with the local strategy.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) error {
	authenticator, err := authenticatorFromRequest(r)
	if err != nil {
		return err
	}

	user, err := authenticator.Authenticate(auth.StrategyLocal, r)
	switch {
	case errors.Is(err, auth.ErrNoCredentials), errors.Is(err, auth.ErrInvalidCredentials):
		return errInvalidLogin.WithCause(err)
	case err != nil:
		return err
	}

	return h.writeAuthResponse(w, r, user)
}

// currentUser resolves the bearer token owner. Requests without a usable
// token get null instead of an error.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) error {
	authenticator, err := authenticatorFromRequest(r)
	if err != nil {
		return err
	}

	user, err := authenticator.Authenticate(auth.StrategyJWT, r)
	switch {
	case errors.Is(err, auth.ErrNoCredentials),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, store.ErrNoUserWasFound):
		logger.FromRequest(r).Debug().Err(err).Msg("no current user")
		_, err = utils.WriteJSON(w, nil, http.StatusOK)
		return err
	case err != nil:
		return err
	}

	_, err = utils.WriteJSON(w, user, http.StatusOK)
	return err
}

func (h *Handler) writeAuthResponse(w http.ResponseWriter, r *http.Request, user models.User) error {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		return err
	}

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	_, err = utils.WriteJSON(w, models.AuthResponse{User: user, Token: token.SignedString}, http.StatusOK)
	return err
}

// rateLimited rejects calls with 429 once the login limiter is exhausted.
func (h *Handler) rateLimited(fn HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		if !h.loginLimiter.Allow() {
			return errTooManyRequests
		}
		return fn(w, r)
	}
}

// credentialsFromRequest reads the registration payload from the parsed
// JSON body or, failing that, from the urlencoded form.
func credentialsFromRequest(r *http.Request) (models.Credentials, error) {
	var creds models.Credentials

	rc, ok := RequestContextFrom(r.Context())
	if !ok {
		return creds, nil
	}

	switch {
	case len(rc.Body) > 0:
		if err := rc.DecodeBody(&creds); err != nil {
			return creds, NewHTTPError(http.StatusBadRequest, app.MsgInvalidPayload).WithCause(err)
		}
	case rc.Form != nil:
		creds.Username = rc.Form.Get("username")
		creds.Email = rc.Form.Get("email")
		creds.Password = rc.Form.Get("password")
	}

	return creds, nil
}

func authenticatorFromRequest(r *http.Request) (*auth.Authenticator, error) {
	rc, ok := RequestContextFrom(r.Context())
	if !ok || rc.Auth == nil {
		return nil, ErrAuthUnavailable
	}
	return rc.Auth, nil
}
