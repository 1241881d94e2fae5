// Package uid generates opaque identifiers for sessions and correlation ids.
package uid

import "github.com/google/uuid"

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}

// UUID produces version 7 UUIDs so ids sort by creation time.
type UUID struct {
	fallback func() string
}

// NewUUID returns a UUID generator that falls back to random v4 ids when the
// v7 clock source errors.
func NewUUID() *UUID {
	return &UUID{fallback: uuid.NewString}
}

func (u *UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return u.fallback()
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
