package store

import "github.com/google/uuid"

// NewID returns a collision-resistant record identifier. Id generation
// lives here rather than in the callers so every store implementation
// assigns ids the same way.
func NewID() string {
	return uuid.NewString()
}
