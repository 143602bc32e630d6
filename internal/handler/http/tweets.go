package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-tweeter/internal/app"
	"github.com/MKhiriev/go-tweeter/internal/store"
	"github.com/MKhiriev/go-tweeter/internal/utils"
	"github.com/go-chi/chi/v5"
)

var errUserNotFound = NewHTTPError(http.StatusNotFound, app.MsgUserNotFound).
	WithErrors(map[string]string{"message": app.MsgNoUserWithID})

var errTweetNotFound = NewHTTPError(http.StatusNotFound, app.MsgTweetNotFound).
	WithErrors(map[string]string{"message": app.MsgNoTweetWithID})

func (h *Handler) listTweets(w http.ResponseWriter, r *http.Request) error {
	tweets, err := h.services.TweetService.ListTweets(r.Context())
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, tweets, http.StatusOK)
	return err
}

func (h *Handler) listUserTweets(w http.ResponseWriter, r *http.Request) error {
	userID, err := idParam(r, "userID")
	if err != nil {
		return err
	}

	tweets, err := h.services.TweetService.ListUserTweets(r.Context(), userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return errUserNotFound.WithCause(err)
	}
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, tweets, http.StatusOK)
	return err
}

func (h *Handler) getTweet(w http.ResponseWriter, r *http.Request) error {
	tweetID, err := idParam(r, "tweetID")
	if err != nil {
		return err
	}

	tweet, err := h.services.TweetService.GetTweet(r.Context(), tweetID)
	if errors.Is(err, store.ErrTweetNotFound) {
		return errTweetNotFound.WithCause(err)
	}
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, tweet, http.StatusOK)
	return err
}

// idParam parses a positive integer URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, app.MsgInvalidID).
			WithErrors(map[string]string{name: "must be a positive integer"})
	}

	return id, nil
}
