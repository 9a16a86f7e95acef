package model

import "github.com/google/uuid"

// IDFunc generates identifiers for new records.
type IDFunc func() string

// NewID returns a random UUID v4 string.
func NewID() string {
	return uuid.NewString()
}
