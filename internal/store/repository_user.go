package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/models"
)

var userColumns = []string{"user_id", "username", "email", "hashed_password", "created_at"}

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table. Queries are built with squirrel so the same code serves
// both supported dialects.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts a user and returns it with the generated UserID.
//
// Unique violations are returned as [*DuplicateFieldError], which matches
// [ErrUserAlreadyExists] with [errors.Is].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	query, args, err := r.db.builder.
		Insert(user.TableName()).
		Columns("username", "email", "hashed_password", "created_at").
		Values(user.Username, user.Email, user.HashedPassword, user.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	// create user in db
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.UserID); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		if column, ok := r.db.errorClassifier.UniqueViolation(err); ok {
			return models.User{}, &DuplicateFieldError{Field: column}
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByEmail returns the user registered with email or [ErrNoUserWasFound].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"email": email})
}

// FindUserByID returns the user with userID or [ErrNoUserWasFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"user_id": userID})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&user.UserID, &user.Username, &user.Email, &user.HashedPassword, &user.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error selecting user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}
