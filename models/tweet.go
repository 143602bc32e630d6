package models

import "time"

// Tweet is a short text post authored by a [User].
type Tweet struct {
	TweetID   int64     `json:"_id"`
	AuthorID  int64     `json:"-"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Author is the public projection of a user embedded into a [Tweet].
type Author struct {
	UserID   int64  `json:"_id"`
	Username string `json:"username"`
}

// TableName returns the name of the database table
// associated with the Tweet model.
func (t Tweet) TableName() string {
	return "tweets"
}
