// Package uuid generates time-ordered record identifiers.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a new UUIDv7 based on the current timestamp.
// UUIDv7 is time-ordered, so sorting ids ascending reproduces insertion
// order. The store relies on this as the tie-break for records sharing
// the same date.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to random UUIDv4 if the system clock source fails.
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates and parses a UUID string
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
