package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/internal/store"
	"github.com/MKhiriev/go-tweeter/models"
)

type tweetService struct {
	tweetRepository store.TweetRepository
	userRepository  store.UserRepository

	logger *logger.Logger
}

func NewTweetService(tweetRepository store.TweetRepository, userRepository store.UserRepository, logger *logger.Logger) TweetService {
	return &tweetService{
		tweetRepository: tweetRepository,
		userRepository:  userRepository,
		logger:          logger,
	}
}

func (s *tweetService) ListTweets(ctx context.Context) ([]models.Tweet, error) {
	tweets, err := s.tweetRepository.ListTweets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tweets failed: %w", err)
	}

	return tweets, nil
}

// ListUserTweets returns the tweets of userID. An unknown user yields
// store.ErrNoUserWasFound rather than an empty list.
func (s *tweetService) ListUserTweets(ctx context.Context, userID int64) ([]models.Tweet, error) {
	if _, err := s.userRepository.FindUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("tweet author lookup failed: %w", err)
	}

	tweets, err := s.tweetRepository.ListTweetsByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user tweets failed: %w", err)
	}

	return tweets, nil
}

func (s *tweetService) GetTweet(ctx context.Context, tweetID int64) (models.Tweet, error) {
	tweet, err := s.tweetRepository.FindTweetByID(ctx, tweetID)
	if err != nil {
		return models.Tweet{}, fmt.Errorf("tweet lookup failed: %w", err)
	}

	return tweet, nil
}
