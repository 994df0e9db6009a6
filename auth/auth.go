// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/mavi-puzzle/models"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrMissingAdminKey = errors.New("missing admin key")
)

// NewID returns a random UUID string for database records
func NewID() string {
	return uuid.NewString()
}

// GenerateAdminKey creates a random secret suitable for ADMIN_KEY
func GenerateAdminKey() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate admin key: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateAdminKey checks a presented key against the configured one.
// Both are hashed first so the comparison is constant time regardless of length.
func ValidateAdminKey(presented, expected string) error {
	if presented == "" {
		return ErrMissingAdminKey
	}
	a := sha256.Sum256([]byte(presented))
	b := sha256.Sum256([]byte(expected))
	if !hmac.Equal(a[:], b[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}

// UserIDOrGuest returns the trimmed user ID, or the guest marker when empty.
// Callers are not authenticated; the ID is taken as supplied.
func UserIDOrGuest(userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return models.GuestUserID
	}
	return userID
}
