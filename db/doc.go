// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Dialects

Two backends are supported, selected by Config.DatabaseType:

  - sqlite (default): modernc.org/sqlite, pure Go, file path as URL
  - postgres: github.com/lib/pq, postgres:// URL

	conn, err := db.Open(db.SQLite, "./mavi.db")

Queries are written with ? placeholders. DB and Tx rewrite them to $1,
$2, ... when talking to PostgreSQL, so handlers never branch on dialect.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - puzzle: metadata, image, JSON columns (tags, difficulty_available,
    piece_data) and play statistics
  - score: one row per completed game
  - app_user: player profiles and running totals

Scores reference puzzles and users by ID without foreign keys: guest
scores use the "guest" marker and scores outlive deleted puzzles.

# Indexes

  - puzzle.status, puzzle.category
  - score.(puzzle_id, difficulty), score.user_id, score.score,
    score.completed_at
  - app_user.email (unique)
*/
package db
