package utils

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns a fresh entity identifier in ObjectID hex form. Every store
// backend uses the same format so ids survive a backend switch.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a well-formed identifier.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// NormalizeEmail trims and lower-cases an email used as a login key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
