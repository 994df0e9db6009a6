package models

import (
	"time"

	"github.com/danielhkuo/mavi-puzzle/puzzle"
	"github.com/danielhkuo/mavi-puzzle/scoring"
)

// Puzzle status constants
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// GuestUserID marks scores submitted without a user
const GuestUserID = "guest"

// User roles
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// DefaultCategory is used when a puzzle is uploaded without one
const DefaultCategory = "General"

// DefaultDifficulties are offered when an upload doesn't list any
var DefaultDifficulties = []string{"easy", "medium", "hard", "expert"}

// ValidStatus reports whether s is a known puzzle status
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// Request types

type UpdatePuzzleRequest struct {
	Title               *string   `json:"title"`
	Description         *string   `json:"description"`
	Category            *string   `json:"category"`
	Tags                *[]string `json:"tags"`
	DifficultyAvailable *[]string `json:"difficulty_available"`
	Status              *string   `json:"status"`
	IsFeatured          *bool     `json:"is_featured"`
	DisplayOrder        *int      `json:"display_order"`
}

type SubmitScoreRequest struct {
	PuzzleID       string `json:"puzzle_id"`
	CompletionTime int64  `json:"completion_time"` // milliseconds
	Moves          int64  `json:"moves"`
	Difficulty     string `json:"difficulty"`
}

type FlagScoreRequest struct {
	Reason string `json:"reason"`
}

type CreateUserRequest struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar,omitempty"`
}

// Response types

type SubmitScoreResponse struct {
	Score             Score                 `json:"score"`
	Achievements      []scoring.Achievement `json:"achievements"`
	AchievementPoints int                   `json:"achievement_points"`
}

type PiecesResponse struct {
	PuzzleID      string  `json:"puzzle_id"`
	Difficulty    string  `json:"difficulty"`
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	CanonicalSize int     `json:"canonical_size"`
	Pieces        []Piece `json:"pieces"`
	Total         int     `json:"total"`
}

type DifficultyInfo struct {
	Difficulty  string  `json:"difficulty"`
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	Pieces      int     `json:"pieces"`
	PieceWidth  int     `json:"piece_width"`
	PieceHeight int     `json:"piece_height"`
	Multiplier  float64 `json:"multiplier"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Domain types

type PuzzleImage struct {
	PublicID string `json:"cloudinary_public_id"`
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
}

type PuzzleMetadata struct {
	TotalPlays            int   `json:"total_plays"`
	TotalCompletions      int   `json:"total_completions"`
	AverageCompletionTime int64 `json:"average_completion_time"` // milliseconds
}

type Puzzle struct {
	ID                  string              `json:"id"`
	Title               string              `json:"title"`
	Description         *string             `json:"description,omitempty"`
	Category            string              `json:"category"`
	Tags                []string            `json:"tags"`
	OriginalImage       PuzzleImage         `json:"original_image"`
	ThumbnailURL        string              `json:"thumbnail_url"`
	PieceData           map[string][]string `json:"piece_data,omitempty"`
	DifficultyAvailable []string            `json:"difficulty_available"`
	Metadata            PuzzleMetadata      `json:"metadata"`
	Status              string              `json:"status"`
	IsFeatured          bool                `json:"is_featured"`
	DisplayOrder        int                 `json:"display_order"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
	CreatedBy           *string             `json:"created_by,omitempty"`
}

// Piece is a cut rect together with its delivery URL
type Piece struct {
	puzzle.PieceRect
	URL string `json:"url"`
}

type Score struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	PuzzleID       string    `json:"puzzle_id"`
	CompletionTime int64     `json:"completion_time"` // milliseconds
	Moves          int64     `json:"moves"`
	Difficulty     string    `json:"difficulty"`
	Score          int64     `json:"score"`
	IsValidated    bool      `json:"is_validated"`
	FlagReason     *string   `json:"flag_reason,omitempty"`
	CompletedAt    time.Time `json:"completed_at"`
}

type UserStats struct {
	TotalPuzzlesCompleted int   `json:"total_puzzles_completed"`
	TotalPlayTime         int64 `json:"total_play_time"` // milliseconds
	AverageCompletionTime int64 `json:"average_completion_time"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Avatar    *string   `json:"avatar"`
	Role      string    `json:"role"`
	Stats     UserStats `json:"stats"`
	CreatedAt time.Time `json:"created_at"`
}

// Leaderboard types

type LeaderboardUser struct {
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
}

type LeaderboardPuzzle struct {
	Title        string  `json:"title"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

type LeaderboardEntry struct {
	Rank           int                `json:"rank"`
	ScoreID        string             `json:"score_id"`
	User           LeaderboardUser    `json:"user"`
	Puzzle         *LeaderboardPuzzle `json:"puzzle,omitempty"`
	Score          int64              `json:"score"`
	CompletionTime int64              `json:"completion_time"`
	Moves          int64              `json:"moves"`
	Difficulty     string             `json:"difficulty"`
	CompletedAt    time.Time          `json:"completed_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
