// Package types holds identifier helpers shared by the storage and service layers.
package types

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh random identifier for a new row
func NewID() string {
	return uuid.NewString()
}

// NormalizeID trims whitespace and lowercases a user-supplied identifier so
// ids pasted from the CLI or URLs compare equal to stored ones
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
