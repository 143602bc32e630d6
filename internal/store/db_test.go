package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/models"
)

func TestNewDB_UnsupportedDriver(t *testing.T) {
	_, err := NewDB(context.Background(), config.DB{Driver: "mysql", DSN: "x"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

// TestSQLiteRoundTrip exercises migrations and both repositories against a
// real SQLite file.
func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "tweeter.db") + "?_foreign_keys=on"

	db, err := NewDB(ctx, config.DB{Driver: config.DriverSQLite, DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, config.DriverSQLite, db.Driver())

	storages := NewStorages(db, logger.Nop())

	demo, err := storages.UserRepository.CreateUser(ctx, models.User{
		Username:       "demo",
		Email:          "demo@user.io",
		HashedPassword: "hash",
	})
	require.NoError(t, err)
	require.NotZero(t, demo.UserID)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := storages.UserRepository.CreateUser(ctx, models.User{
			Username:       "other",
			Email:          "demo@user.io",
			HashedPassword: "hash",
		})
		require.ErrorIs(t, err, ErrUserAlreadyExists)

		var dup *DuplicateFieldError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "email", dup.Field)
	})

	t.Run("find user", func(t *testing.T) {
		byEmail, err := storages.UserRepository.FindUserByEmail(ctx, "demo@user.io")
		require.NoError(t, err)
		assert.Equal(t, demo.UserID, byEmail.UserID)
		assert.Equal(t, "hash", byEmail.HashedPassword)

		_, err = storages.UserRepository.FindUserByID(ctx, demo.UserID+100)
		assert.ErrorIs(t, err, ErrNoUserWasFound)
	})

	t.Run("tweets", func(t *testing.T) {
		_, err := db.ExecContext(ctx,
			`INSERT INTO tweets (author_id, text, created_at) VALUES (?, 'first', '2026-01-01 10:00:00'), (?, 'second', '2026-01-01 11:00:00')`,
			demo.UserID, demo.UserID)
		require.NoError(t, err)

		all, err := storages.TweetRepository.ListTweets(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "second", all[0].Text)
		assert.Equal(t, "demo", all[0].Author.Username)

		byAuthor, err := storages.TweetRepository.ListTweetsByAuthor(ctx, demo.UserID)
		require.NoError(t, err)
		assert.Len(t, byAuthor, 2)

		one, err := storages.TweetRepository.FindTweetByID(ctx, all[1].TweetID)
		require.NoError(t, err)
		assert.Equal(t, "first", one.Text)

		_, err = storages.TweetRepository.FindTweetByID(ctx, 9999)
		assert.ErrorIs(t, err, ErrTweetNotFound)
	})
}
