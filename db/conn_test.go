// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		dialect  Dialect
		query    string
		expected string
	}{
		{SQLite, "SELECT * FROM score WHERE id = ? AND user_id = ?", "SELECT * FROM score WHERE id = ? AND user_id = ?"},
		{Postgres, "SELECT * FROM score WHERE id = ? AND user_id = ?", "SELECT * FROM score WHERE id = $1 AND user_id = $2"},
		{Postgres, "SELECT 1", "SELECT 1"},
		{Postgres, "LIMIT ? OFFSET ?", "LIMIT $1 OFFSET $2"},
	}

	for _, tt := range tests {
		got := rebind(tt.dialect, tt.query)
		if got != tt.expected {
			t.Errorf("rebind(%s, %q) = %q, want %q", tt.dialect, tt.query, got, tt.expected)
		}
	}
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{
		"sqlite":     SQLite,
		"SQLite":     SQLite,
		"postgres":   Postgres,
		"postgresql": Postgres,
	} {
		got, err := ParseDialect(in)
		if err != nil {
			t.Errorf("ParseDialect(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseDialect(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseDialect("mongo"); !errors.Is(err, ErrUnknownDialect) {
		t.Errorf("Expected ErrUnknownDialect, got %v", err)
	}
}

func TestOpenAndCreateSchema(t *testing.T) {
	conn, err := Open(SQLite, filepath.Join(t.TempDir(), "schema.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer conn.Close()

	if conn.Dialect() != SQLite {
		t.Errorf("Expected sqlite dialect, got %s", conn.Dialect())
	}

	// Twice: IF NOT EXISTS must make this idempotent
	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema() run %d failed: %v", i+1, err)
		}
	}

	for _, table := range []string{"puzzle", "score", "app_user"} {
		var name string
		err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestTransactionRebind(t *testing.T) {
	conn, err := Open(SQLite, filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema() failed: %v", err)
	}

	tx, err := conn.Begin()
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	_, err = tx.Exec(`
		INSERT INTO score (id, user_id, puzzle_id, completion_time, moves, difficulty, score, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, "s1", "guest", "p1", 30000, 9, "easy", 9850, time.Now().UTC())
	if err != nil {
		tx.Rollback()
		t.Fatalf("Exec in tx failed: %v", err)
	}

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM score WHERE puzzle_id = ?", "p1").Scan(&count); err != nil {
		t.Fatalf("QueryRow in tx failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 score inside tx, got %d", count)
	}

	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}

	if err := conn.QueryRow("SELECT COUNT(*) FROM score").Scan(&count); err != nil {
		t.Fatalf("QueryRow failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected rollback to discard the score, got %d rows", count)
	}
}
