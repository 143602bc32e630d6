package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-tweeter/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAuthorizationHeader is returned by ParseBearerToken when the
// header is not of the form "Bearer <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for the given user.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - username:        the user's display name
//
// All parameters except the user are required. Returns an error if any of
// them are empty or zero. A negative duration yields an already-expired token.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("go-tweeter", user, time.Hour, "secret")
func GenerateJWTToken(issuer string, user models.User, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	expiresAt := now.Add(tokenDuration)
	claims := &models.Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(user.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{SignedString: tokenString, UserID: user.UserID, ExpiresAt: expiresAt}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence and conversion to int64 UserID
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "go-tweeter")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		return models.Token{}, err
	}

	token := models.Token{SignedString: tokenString, UserID: userID}
	if claims.ExpiresAt != nil {
		token.ExpiresAt = claims.ExpiresAt.Time
	}

	return token, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
