package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns a fresh 24-character lowercase hex identifier.
// Identifiers share the ObjectID shape so rows move freely between the SQL and Mongo stores.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// NormalizeID validates a client-supplied identifier and returns its canonical lowercase form.
func NormalizeID(raw string) (string, bool) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return oid.Hex(), true
}

// IsValidID reports whether raw is a well-formed 24-hex identifier.
func IsValidID(raw string) bool {
	_, ok := NormalizeID(raw)
	return ok
}

// NormalizeEmail trims and lowercases an email so it can be used as an identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
