package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/models"
)

type tweetRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTweetRepository constructs a [TweetRepository] backed by db.
func NewTweetRepository(db *DB, logger *logger.Logger) TweetRepository {
	logger.Debug().Msg("creating tweet repository")
	return &tweetRepository{
		db:     db,
		logger: logger,
	}
}

// selectTweets joins every tweet with its author's username.
func (r *tweetRepository) selectTweets() sq.SelectBuilder {
	return r.db.builder.
		Select("t.tweet_id", "t.author_id", "u.username", "t.text", "t.created_at").
		From("tweets t").
		Join("users u ON u.user_id = t.author_id").
		OrderBy("t.created_at DESC", "t.tweet_id DESC")
}

func (r *tweetRepository) ListTweets(ctx context.Context) ([]models.Tweet, error) {
	return r.list(ctx, r.selectTweets())
}

func (r *tweetRepository) ListTweetsByAuthor(ctx context.Context, authorID int64) ([]models.Tweet, error) {
	return r.list(ctx, r.selectTweets().Where(sq.Eq{"t.author_id": authorID}))
}

// FindTweetByID returns the tweet with tweetID or [ErrTweetNotFound].
func (r *tweetRepository) FindTweetByID(ctx context.Context, tweetID int64) (models.Tweet, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.selectTweets().Where(sq.Eq{"t.tweet_id": tweetID}).ToSql()
	if err != nil {
		return models.Tweet{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tweet, err := scanTweet(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Tweet{}, ErrTweetNotFound
	case err != nil:
		log.Err(err).Str("func", "*tweetRepository.FindTweetByID").Msg("error selecting tweet")
		return models.Tweet{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return tweet, nil
}

func (r *tweetRepository) list(ctx context.Context, builder sq.SelectBuilder) ([]models.Tweet, error) {
	log := logger.FromContext(ctx)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*tweetRepository.list").Msg("error selecting tweets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tweets := make([]models.Tweet, 0)
	for rows.Next() {
		tweet, err := scanTweet(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tweets = append(tweets, tweet)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tweets, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTweet(row rowScanner) (models.Tweet, error) {
	var tweet models.Tweet
	err := row.Scan(&tweet.TweetID, &tweet.AuthorID, &tweet.Author.Username, &tweet.Text, &tweet.CreatedAt)
	tweet.Author.UserID = tweet.AuthorID
	return tweet, err
}
