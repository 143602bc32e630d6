package models

import "time"

// User is a registered account. It is the principal produced by every
// authentication strategy.
type User struct {
	// UserID is the database identifier of the user.
	UserID int64 `json:"_id"`

	// Username is the unique public handle of the user.
	Username string `json:"username"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// HashedPassword is the bcrypt hash of the user's password.
	// It never leaves the server.
	HashedPassword string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials is the payload accepted by the registration and login routes.
type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
