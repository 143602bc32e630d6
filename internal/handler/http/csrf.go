package http

import (
	"net/http"

	"github.com/MKhiriev/go-tweeter/internal/utils"
	"github.com/MKhiriev/go-tweeter/models"
)

// csrfToken issues a token for the caller's CSRF cookie. The token is
// returned in the body and in a script-readable cookie.
func (h *Handler) csrfToken(w http.ResponseWriter, r *http.Request) error {
	rc, ok := RequestContextFrom(r.Context())
	if !ok {
		return ErrCSRFUnavailable
	}

	token, err := rc.CSRFToken()
	if err != nil {
		return err
	}

	policy := h.app.SecurityPolicy()
	http.SetCookie(w, &http.Cookie{
		Name:     csrfTokenCookieName,
		Value:    token,
		Path:     "/",
		Secure:   policy.IsProduction,
		SameSite: csrfSameSite(policy),
	})

	_, err = utils.WriteJSON(w, models.CSRFTokenResponse{Token: token}, http.StatusOK)
	return err
}
