// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(d *DB) error {
	// lib/pq accepts multiple statements in one Exec; modernc sqlite does too
	_, err := d.DB.Exec(Schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Schema is valid for both SQLite and PostgreSQL
const Schema = `
-- Puzzles
CREATE TABLE IF NOT EXISTS puzzle (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    category TEXT NOT NULL DEFAULT 'General',
    tags TEXT NOT NULL DEFAULT '[]',
    image_public_id TEXT NOT NULL,
    image_url TEXT NOT NULL,
    image_width INTEGER NOT NULL,
    image_height INTEGER NOT NULL,
    image_format TEXT NOT NULL,
    thumbnail_url TEXT NOT NULL,
    piece_data TEXT NOT NULL DEFAULT '{}',
    difficulty_available TEXT NOT NULL DEFAULT '[]',
    total_plays INTEGER NOT NULL DEFAULT 0,
    total_completions INTEGER NOT NULL DEFAULT 0,
    average_completion_time BIGINT NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'published' CHECK (status IN ('draft', 'published', 'archived')),
    is_featured BOOLEAN NOT NULL DEFAULT FALSE,
    display_order INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    created_by TEXT
);

CREATE INDEX IF NOT EXISTS idx_puzzle_status ON puzzle(status);
CREATE INDEX IF NOT EXISTS idx_puzzle_category ON puzzle(category);

-- Players
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    username TEXT NOT NULL,
    avatar TEXT,
    role TEXT NOT NULL DEFAULT 'player' CHECK (role IN ('player', 'admin')),
    total_puzzles_completed INTEGER NOT NULL DEFAULT 0,
    total_play_time BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Scores
CREATE TABLE IF NOT EXISTS score (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    puzzle_id TEXT NOT NULL,
    completion_time BIGINT NOT NULL CHECK (completion_time >= 0),
    moves INTEGER NOT NULL CHECK (moves >= 0),
    difficulty TEXT NOT NULL,
    score BIGINT NOT NULL CHECK (score >= 0),
    is_validated BOOLEAN NOT NULL DEFAULT TRUE,
    flag_reason TEXT,
    completed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_score_puzzle ON score(puzzle_id, difficulty);
CREATE INDEX IF NOT EXISTS idx_score_user ON score(user_id);
CREATE INDEX IF NOT EXISTS idx_score_rank ON score(score DESC);
CREATE INDEX IF NOT EXISTS idx_score_completed_at ON score(completed_at);
`
