package store

import "github.com/MKhiriev/go-tweeter/internal/logger"

// Storages groups the repositories the service layer depends on.
type Storages struct {
	UserRepository  UserRepository
	TweetRepository TweetRepository
}

// NewStorages builds every repository on top of db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		TweetRepository: NewTweetRepository(db, log),
	}
}
