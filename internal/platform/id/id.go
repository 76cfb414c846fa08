// Package id provides utilities for generating URL-safe identifiers.
//
// Identifiers are generated using UUIDv4 bytes encoded as base32 (RFC 4648)
// with no padding. The resulting strings are 26 characters long, lowercase,
// and safe for use in URLs and file paths.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a new collision-resistant random identifier.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(value[:])
	return strings.ToLower(encoded), nil
}

// MustNewID returns a new identifier or panics when entropy is unavailable.
// Reserved for call sites where id generation failure is unrecoverable
// anyway, such as test fixtures.
func MustNewID() string {
	value, err := NewID()
	if err != nil {
		panic(err)
	}
	return value
}
