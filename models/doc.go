// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - UpdatePuzzleRequest: partial puzzle metadata (nil fields are left alone)
  - SubmitScoreRequest: puzzle_id, completion_time (ms), moves, difficulty
  - FlagScoreRequest: reason
  - CreateUserRequest: email, username, avatar

Puzzle creation is a multipart form, not JSON; see handlers.AdminHandler.

# Response Types

  - SubmitScoreResponse: stored score plus earned achievements
  - PiecesResponse: grid, rects and delivery URLs for one difficulty
  - DifficultyInfo: grid and multiplier for one difficulty
  - LeaderboardEntry: ranked score with user and puzzle summary
  - MessageResponse, HealthResponse, ErrorResponse

# Domain Types

  - Puzzle: metadata, image, piece URLs per difficulty, play statistics
  - Score: one completed game
  - User: player profile and running statistics

# Constants

Puzzle status values:

	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"

Scores submitted without a user_id are stored under GuestUserID ("guest").
*/
package models
