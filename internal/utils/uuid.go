package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers for request tracing.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random UUIDv4
// if the monotonic source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
