// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the MAVI Puzzle API.

# Handler Types

Each handler is a struct holding its dependencies:

  - PuzzleHandler: Public catalogue, piece sets, play counting
  - ScoreHandler: Score submission, leaderboards, moderation
  - UserHandler: Player registration and profiles
  - AdminHandler: Image upload and puzzle management

Handlers are created via constructor functions:

	puzzles := handlers.NewPuzzleHandler(conn)
	scores := handlers.NewScoreHandler(conn, hub)
	admin := handlers.NewAdminHandler(conn, cdn)

# Puzzle Lifecycle

Puzzles are draft, published or archived. Public endpoints only ever
return published puzzles; the admin endpoints see every status.

	POST   /api/admin/puzzles      → UploadPuzzle (multipart, stores piece URLs)
	PUT    /api/admin/puzzles/{id} → UpdatePuzzle
	DELETE /api/admin/puzzles/{id} → DeletePuzzle (removes the CDN image)

Admin operations require the X-Admin-Key header.

# Pieces

Piece URLs for all six difficulties are computed once at upload time and
stored in piece_data. GetPieces pairs them with the cut rectangles from
the puzzle package:

	GET /api/puzzles/{id}/pieces/{difficulty}

# Scores

SubmitScore computes the score and achievements, then updates the score
table, the puzzle running average and the player totals in one
transaction. Each change is pushed to live websocket subscribers through
the Broadcaster interface.

	POST /api/scores                   → SubmitScore
	GET  /api/scores/leaderboard       → Leaderboard (puzzle_id, difficulty, timeframe)
	GET  /api/scores/puzzle/{puzzle_id} → PuzzleScores
	GET  /api/scores/user/{user_id}     → UserScores

QueryLeaderboard is exported so the CLI can print the same ranking.
*/
package handlers
