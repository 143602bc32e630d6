package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-tweeter/internal/app"
	"github.com/MKhiriev/go-tweeter/internal/validators"
	"github.com/MKhiriev/go-tweeter/models"
)

// AuthValidationService checks credential payloads before they reach the
// wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewCredentialsValidator(),
	}
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error) {
	if err := v.validate(ctx, creds); err != nil {
		return models.User{}, err
	}

	return v.inner.RegisterUser(ctx, creds)
}

func (v *AuthValidationService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	if err := v.validate(ctx, creds, validators.FieldEmail, validators.FieldPassword); err != nil {
		return models.User{}, err
	}

	return v.inner.Login(ctx, creds)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.ParseToken(ctx, tokenString)
}

func (v *AuthValidationService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	return v.inner.CurrentUser(ctx, userID)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}

func (v *AuthValidationService) validate(ctx context.Context, creds models.Credentials, fields ...string) error {
	err := v.validator.Validate(ctx, creds, fields...)

	var fieldErrs validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		return &ValidationError{Message: app.MsgValidationError, Fields: fieldErrs, Err: err}
	}
	return err
}
