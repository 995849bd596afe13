package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// NewIdempotencyKey generates the per-attempt key sent with a sale
// commit. A fresh key per attempt means an operator retry after a
// failure is a new commit, never a replay of the failed one.
func NewIdempotencyKey() string {
	return uuid.New().String()
}

// NewSessionRef generates a short human-readable session reference for
// log lines.
func NewSessionRef() string {
	return "TRM-" + strings.ToUpper(uuid.New().String()[:8])
}
