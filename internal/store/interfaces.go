package store

import (
	"context"

	"github.com/MKhiriev/go-tweeter/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists and looks up registered accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with UserID and CreatedAt set.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// TweetRepository reads tweets together with their author's public data.
// Results are ordered newest first.
type TweetRepository interface {
	ListTweets(ctx context.Context) ([]models.Tweet, error)
	ListTweetsByAuthor(ctx context.Context, authorID int64) ([]models.Tweet, error)
	FindTweetByID(ctx context.Context, tweetID int64) (models.Tweet, error)
}

// ErrorClassifier recognises driver-specific constraint failures.
type ErrorClassifier interface {
	// UniqueViolation reports whether err is a unique constraint failure.
	// column is the offending column when the driver exposes it, or "".
	UniqueViolation(err error) (column string, ok bool)
}
