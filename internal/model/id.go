package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh opaque record identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidateID checks that an ID is usable as a lookup key.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" || strings.ContainsAny(id, " \t\n") {
		return ErrInvalidID
	}
	return nil
}

// Today formats t as a date-only string.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}
