package validators

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-tweeter/models"
)

// Field names of [models.Credentials], as they appear in JSON.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Length bounds, in runes.
const (
	MinUsernameLength = 2
	MaxUsernameLength = 30
	MinPasswordLength = 6
	MaxPasswordLength = 30
)

// CredentialsValidator checks registration and login payloads.
type CredentialsValidator struct{}

func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

// Validate checks models.Credentials. With no fields every field is checked;
// login passes FieldEmail and FieldPassword only.
func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialsValidator) validateCredentials(_ context.Context, creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	errs := FieldErrors{}
	for _, field := range fields {
		switch field {
		case FieldUsername:
			if n := utf8.RuneCountInString(strings.TrimSpace(creds.Username)); n < MinUsernameLength || n > MaxUsernameLength {
				errs[FieldUsername] = fmt.Sprintf("Username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength)
			}
		case FieldEmail:
			if !isEmail(creds.Email) {
				errs[FieldEmail] = "Email is invalid"
			}
		case FieldPassword:
			if n := utf8.RuneCountInString(creds.Password); n < MinPasswordLength || n > MaxPasswordLength {
				errs[FieldPassword] = fmt.Sprintf("Password must be between %d and %d characters", MinPasswordLength, MaxPasswordLength)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// isEmail accepts a bare addr-spec; display names and angle brackets are rejected.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && addr.Name == ""
}
