package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tweeter/internal/logger"
)

var tweetColumns = []string{"tweet_id", "author_id", "username", "text", "created_at"}

const selectTweets = "SELECT t.tweet_id, t.author_id, u.username, t.text, t.created_at FROM tweets t JOIN users u ON u.user_id = t.author_id"

func newTestTweetRepo(t *testing.T) (TweetRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return NewTweetRepository(db, logger.Nop()), mock
}

func TestListTweets(t *testing.T) {
	repo, mock := newTestTweetRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(selectTweets + " ORDER BY t.created_at DESC, t.tweet_id DESC")).
		WillReturnRows(sqlmock.NewRows(tweetColumns).
			AddRow(2, 1, "demo", "second", now).
			AddRow(1, 1, "demo", "first", now.Add(-time.Minute)))

	tweets, err := repo.ListTweets(context.Background())
	require.NoError(t, err)
	require.Len(t, tweets, 2)

	assert.Equal(t, int64(2), tweets[0].TweetID)
	assert.Equal(t, "second", tweets[0].Text)
	assert.Equal(t, int64(1), tweets[0].Author.UserID)
	assert.Equal(t, "demo", tweets[0].Author.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTweets_Empty(t *testing.T) {
	repo, mock := newTestTweetRepo(t)

	mock.ExpectQuery("SELECT t.tweet_id").
		WillReturnRows(sqlmock.NewRows(tweetColumns))

	tweets, err := repo.ListTweets(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tweets)
	assert.Empty(t, tweets)
}

func TestListTweets_QueryError(t *testing.T) {
	repo, mock := newTestTweetRepo(t)

	mock.ExpectQuery("SELECT t.tweet_id").
		WillReturnError(errors.New("boom"))

	_, err := repo.ListTweets(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestListTweets_RowError(t *testing.T) {
	repo, mock := newTestTweetRepo(t)

	mock.ExpectQuery("SELECT t.tweet_id").
		WillReturnRows(sqlmock.NewRows(tweetColumns).
			AddRow(1, 1, "demo", "first", time.Now()).
			RowError(0, errors.New("row broke")))

	_, err := repo.ListTweets(context.Background())
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestListTweetsByAuthor(t *testing.T) {
	repo, mock := newTestTweetRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectTweets + " WHERE t.author_id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(tweetColumns).AddRow(9, 5, "writer", "hello", time.Now()))

	tweets, err := repo.ListTweetsByAuthor(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, tweets, 1)
	assert.Equal(t, int64(5), tweets[0].AuthorID)
}

func TestFindTweetByID(t *testing.T) {
	repo, mock := newTestTweetRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectTweets + " WHERE t.tweet_id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(tweetColumns).AddRow(9, 5, "writer", "hello", time.Now()))

	tweet, err := repo.FindTweetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "hello", tweet.Text)
	assert.Equal(t, "writer", tweet.Author.Username)
}

func TestFindTweetByID_NotFound(t *testing.T) {
	repo, mock := newTestTweetRepo(t)

	mock.ExpectQuery("SELECT t.tweet_id").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(tweetColumns))

	_, err := repo.FindTweetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTweetNotFound)
}
