package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set issued to authenticated users.
//
// The standard "sub" claim carries the user ID; Username is duplicated into
// the token so clients can render the current user without another request.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the "sub" claim as a base-10 int64.
func (c *Claims) UserID() (int64, error) {
	sub, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// Token is a signed or parsed access token.
type Token struct {
	// SignedString is the compact JWS representation
	// (base64url-encoded header.payload.signature).
	SignedString string

	// UserID is the owner identifier taken from the "sub" claim.
	UserID int64

	// ExpiresAt is the moment the token stops being accepted.
	ExpiresAt time.Time
}

// String returns the compact JWS serialization of the token.
func (t Token) String() string {
	return t.SignedString
}
