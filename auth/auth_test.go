// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("NewID() returned invalid UUID %q: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("NewID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateAdminKey(t *testing.T) {
	key1, err := GenerateAdminKey()
	if err != nil {
		t.Fatalf("GenerateAdminKey() error = %v", err)
	}
	key2, err := GenerateAdminKey()
	if err != nil {
		t.Fatalf("GenerateAdminKey() error = %v", err)
	}

	if key1 == key2 {
		t.Error("GenerateAdminKey() should return unique keys")
	}

	// 24 bytes base64 = 32 characters, no padding
	if len(key1) != 32 {
		t.Errorf("Expected key length 32, got %d", len(key1))
	}
	if strings.ContainsAny(key1, "+/=") {
		t.Errorf("Key should be URL-safe without padding: %q", key1)
	}
}

func TestValidateAdminKey(t *testing.T) {
	tests := []struct {
		name      string
		presented string
		expected  string
		wantErr   error
	}{
		{"matching key", "s3cret", "s3cret", nil},
		{"wrong key", "guess", "s3cret", ErrInvalidAdminKey},
		{"prefix of key", "s3cre", "s3cret", ErrInvalidAdminKey},
		{"case differs", "S3CRET", "s3cret", ErrInvalidAdminKey},
		{"missing key", "", "s3cret", ErrMissingAdminKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.presented, tt.expected)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAdminKey() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserIDOrGuest(t *testing.T) {
	tests := map[string]string{
		"":          "guest",
		"   ":       "guest",
		"user-123":  "user-123",
		" user-9 ":  "user-9",
	}
	for in, want := range tests {
		if got := UserIDOrGuest(in); got != want {
			t.Errorf("UserIDOrGuest(%q) = %q, want %q", in, got, want)
		}
	}
}
