package service

import (
	"context"

	"github.com/MKhiriev/go-tweeter/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=AuthServiceWrapper

// AuthService registers users, checks credentials and issues access tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error)
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	CurrentUser(ctx context.Context, userID int64) (models.User, error)
}

// TweetService serves read-only tweet queries.
type TweetService interface {
	ListTweets(ctx context.Context) ([]models.Tweet, error)
	ListUserTweets(ctx context.Context, userID int64) ([]models.Tweet, error)
	GetTweet(ctx context.Context, tweetID int64) (models.Tweet, error)
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService // returns a decorated AuthService applying additional behavior
}
