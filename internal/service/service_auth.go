package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-tweeter/internal/app"
	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/internal/store"
	"github.com/MKhiriev/go-tweeter/internal/utils"
	"github.com/MKhiriev/go-tweeter/models"
)

// authService is the concrete implementation of AuthService.
// Passwords are stored as bcrypt hashes; access tokens are HS256 JWTs.
type authService struct {
	userRepository store.UserRepository

	bcryptCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		bcryptCost:     cfg.BcryptCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser hashes the password and persists a new account.
//
// A username or email collision is reported as a *ValidationError naming
// the taken field.
func (a *authService) RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), a.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.User{}, &ValidationError{
			Message: app.MsgValidationError,
			Fields:  map[string]string{"password": "Password is too long"},
			Err:     err,
		}
	}
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.User{
		Username:       strings.TrimSpace(creds.Username),
		Email:          strings.ToLower(strings.TrimSpace(creds.Email)),
		HashedPassword: string(hash),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")

		var dup *store.DuplicateFieldError
		if errors.As(err, &dup) {
			return models.User{}, duplicateUserError(dup)
		}
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

func duplicateUserError(dup *store.DuplicateFieldError) *ValidationError {
	verr := &ValidationError{Message: app.MsgValidationError, Err: dup}
	if dup.Field == "" {
		verr.Message = app.MsgAlreadyRegisteredWith + "username or email"
		return verr
	}

	verr.Fields = map[string]string{
		dup.Field: app.MsgAlreadyRegisteredWith + dup.Field,
	}
	return verr
}

// Login returns the user whose email and password match creds.
//
// An unknown email and a wrong password both produce the same
// *ValidationError wrapping ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Msg("login for unknown email")
		return models.User{}, invalidCredentials()
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.HashedPassword), []byte(creds.Password)); err != nil {
		log.Debug().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, invalidCredentials()
	}

	return foundUser, nil
}

func invalidCredentials() *ValidationError {
	return &ValidationError{
		Message: app.MsgInvalidCredentials,
		Fields:  map[string]string{"email": app.MsgInvalidCredentials},
		Err:     ErrInvalidCredentials,
	}
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// CurrentUser loads the account a token was issued for.
func (a *authService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("current user lookup failed: %w", err)
	}

	return user, nil
}
