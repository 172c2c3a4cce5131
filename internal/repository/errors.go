// Package repository wraps the MongoDB collections. Handlers distinguish
// failure cases with the sentinel errors below via errors.Is.
package repository

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when no document matches the id or filter.
// Handlers translate it into 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique index (email) rejects a write.
var ErrDuplicate = errors.New("duplicate")

// ErrInvalidID is returned for ids that are not 24-char hex ObjectIDs.
var ErrInvalidID = errors.New("invalid id")

// ParseID converts a hex string into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
