// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/mavi-puzzle/auth"
	"github.com/danielhkuo/mavi-puzzle/db"
	"github.com/danielhkuo/mavi-puzzle/live"
	"github.com/danielhkuo/mavi-puzzle/middleware"
	"github.com/danielhkuo/mavi-puzzle/models"
	"github.com/danielhkuo/mavi-puzzle/scoring"
)

// Leaderboard timeframes
const (
	TimeframeAllTime = "all-time"
	TimeframeDaily   = "daily"
	TimeframeWeekly  = "weekly"
	TimeframeMonthly = "monthly"
)

const (
	// Fallbacks for leaderboard rows whose user or puzzle is gone
	guestUsername = "Guest"
	unknownPuzzle = "Unknown"
	maxBoardLimit = 500

	// Upper bounds on a submission; keep the stats columns far from overflow
	MaxCompletionTime = int64(30 * 24 * time.Hour / time.Millisecond)
	MaxMoves          = 1_000_000
	scoreColumns  = "id, user_id, puzzle_id, completion_time, moves, difficulty, score, is_validated, flag_reason, completed_at"
)

type ScoreHandler struct {
	db  *db.DB
	hub Broadcaster
	now func() time.Time
}

func NewScoreHandler(conn *db.DB, hub Broadcaster) *ScoreHandler {
	if hub == nil {
		hub = nopBroadcaster{}
	}
	return &ScoreHandler{db: conn, hub: hub, now: time.Now}
}

// SubmitScore handles POST /api/scores
func (h *ScoreHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.PuzzleID = strings.TrimSpace(req.PuzzleID)
	if req.PuzzleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "puzzle_id is required")
		return
	}
	if req.Difficulty == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "difficulty is required")
		return
	}
	if req.CompletionTime < 0 || req.Moves < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "completion_time and moves must be non-negative")
		return
	}
	if req.CompletionTime > MaxCompletionTime || req.Moves > MaxMoves {
		middleware.ErrorResponse(w, http.StatusBadRequest, "completion_time or moves out of range")
		return
	}

	userID := auth.UserIDOrGuest(r.URL.Query().Get("user_id"))
	points := scoring.Compute(req.Difficulty, req.CompletionTime, req.Moves)
	earned := scoring.Award(req.Difficulty, req.CompletionTime, req.Moves, points)

	score := models.Score{
		ID:             auth.NewID(),
		UserID:         userID,
		PuzzleID:       req.PuzzleID,
		CompletionTime: req.CompletionTime,
		Moves:          req.Moves,
		Difficulty:     req.Difficulty,
		Score:          points,
		IsValidated:    true,
		CompletedAt:    h.now().UTC(),
	}

	if err := h.recordScore(score); err != nil {
		slog.Error("failed to record score", "puzzle_id", score.PuzzleID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit score")
		return
	}

	slog.Info("score submitted",
		"score_id", score.ID,
		"puzzle_id", score.PuzzleID,
		"user_id", userID,
		"difficulty", score.Difficulty,
		"score", score.Score,
		"achievements", len(earned),
	)

	h.hub.Broadcast(live.EventScoreSubmitted, score.PuzzleID, score)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitScoreResponse{
		Score:             score,
		Achievements:      earned,
		AchievementPoints: scoring.Points(earned),
	})
}

// recordScore inserts the score and updates puzzle and player stats in one transaction
func (h *ScoreHandler) recordScore(s models.Score) error {
	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO score (id, user_id, puzzle_id, completion_time, moves, difficulty, score, is_validated, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.UserID, s.PuzzleID, s.CompletionTime, s.Moves, s.Difficulty, s.Score, s.IsValidated, s.CompletedAt)
	if err != nil {
		return err
	}

	// Running mean; right-hand side sees the pre-update row
	_, err = tx.Exec(`
		UPDATE puzzle
		SET average_completion_time = (average_completion_time * total_completions + ?) / (total_completions + 1),
			total_completions = total_completions + 1
		WHERE id = ?
	`, s.CompletionTime, s.PuzzleID)
	if err != nil {
		return err
	}

	if s.UserID != models.GuestUserID {
		_, err = tx.Exec(`
			UPDATE app_user
			SET total_puzzles_completed = total_puzzles_completed + 1,
				total_play_time = total_play_time + ?
			WHERE id = ?
		`, s.CompletionTime, s.UserID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Leaderboard handles GET /api/scores/leaderboard
func (h *ScoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(r, "limit", 100, maxBoardLimit)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var where []string
	var args []any
	if v := q.Get("puzzle_id"); v != "" {
		where = append(where, "s.puzzle_id = ?")
		args = append(args, v)
	}
	if v := q.Get("difficulty"); v != "" {
		where = append(where, "s.difficulty = ?")
		args = append(args, v)
	}
	if since, ok := TimeframeStart(q.Get("timeframe"), h.now()); ok {
		where = append(where, "s.completed_at >= ?")
		args = append(args, since)
	}

	entries, err := QueryLeaderboard(h.db, where, args, limit, true)
	if err != nil {
		slog.Error("failed to load leaderboard", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

// PuzzleScores handles GET /api/scores/puzzle/{puzzle_id}
func (h *ScoreHandler) PuzzleScores(w http.ResponseWriter, r *http.Request) {
	puzzleID := r.PathValue("puzzle_id")
	limit, err := intParam(r, "limit", 10, maxBoardLimit)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	where := []string{"s.puzzle_id = ?"}
	args := []any{puzzleID}
	if v := r.URL.Query().Get("difficulty"); v != "" {
		where = append(where, "s.difficulty = ?")
		args = append(args, v)
	}

	entries, err := QueryLeaderboard(h.db, where, args, limit, false)
	if err != nil {
		slog.Error("failed to load puzzle scores", "puzzle_id", puzzleID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

// UserScores handles GET /api/scores/user/{user_id}
func (h *ScoreHandler) UserScores(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	limit, err := intParam(r, "limit", 20, maxBoardLimit)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.db.Query("SELECT "+scoreColumns+" FROM score WHERE user_id = ? ORDER BY completed_at DESC LIMIT ?", userID, limit)
	if err != nil {
		slog.Error("failed to query user scores", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	scores := []models.Score{}
	for rows.Next() {
		s, err := scanScore(rows)
		if err != nil {
			slog.Error("failed to scan score", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate scores", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, scores)
}

// DeleteScore handles DELETE /api/admin/scores/{id}
func (h *ScoreHandler) DeleteScore(w http.ResponseWriter, r *http.Request) {
	scoreID := r.PathValue("id")

	var puzzleID string
	err := h.db.QueryRow("SELECT puzzle_id FROM score WHERE id = ?", scoreID).Scan(&puzzleID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Score not found")
		return
	}
	if err != nil {
		slog.Error("failed to query score", "score_id", scoreID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if _, err := h.db.Exec("DELETE FROM score WHERE id = ?", scoreID); err != nil {
		slog.Error("failed to delete score", "score_id", scoreID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete score")
		return
	}

	slog.Info("score deleted", "score_id", scoreID)
	h.hub.Broadcast(live.EventScoreDeleted, puzzleID, map[string]string{"score_id": scoreID})

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Success: true, Message: "Score deleted successfully"})
}

// FlagScore handles POST /api/admin/scores/{id}/flag
func (h *ScoreHandler) FlagScore(w http.ResponseWriter, r *http.Request) {
	scoreID := r.PathValue("id")

	var req models.FlagScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, middleware.ErrEmptyBody) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}

	res, err := h.db.Exec("UPDATE score SET is_validated = ?, flag_reason = ? WHERE id = ?", false, reason, scoreID)
	if err != nil {
		slog.Error("failed to flag score", "score_id", scoreID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to flag score")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Score not found")
		return
	}

	slog.Info("score flagged", "score_id", scoreID, "reason", req.Reason)
	h.hub.Broadcast(live.EventScoreFlagged, "", map[string]string{"score_id": scoreID})

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Success: true, Message: "Score flagged for review"})
}

// TimeframeStart returns the earliest completed_at for a timeframe.
// all-time and unrecognized values report ok == false.
func TimeframeStart(timeframe string, now time.Time) (time.Time, bool) {
	now = now.UTC()
	switch timeframe {
	case TimeframeDaily:
		return now.Add(-24 * time.Hour), true
	case TimeframeWeekly:
		return now.Add(-7 * 24 * time.Hour), true
	case TimeframeMonthly:
		return now.AddDate(0, 0, -30), true
	}
	return time.Time{}, false
}

// QueryLeaderboard ranks scores matching the where clauses (joined with
// AND, columns prefixed s.) by score, earliest completion first on ties.
func QueryLeaderboard(conn *db.DB, where []string, args []any, limit int, withPuzzle bool) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT s.id, s.score, s.completion_time, s.moves, s.difficulty, s.completed_at,
			u.username, u.avatar, p.title, p.thumbnail_url
		FROM score s
		LEFT JOIN app_user u ON u.id = s.user_id
		LEFT JOIN puzzle p ON p.id = s.puzzle_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY s.score DESC, s.completed_at ASC LIMIT ?"
	args = append(args, limit)

	rows, err := conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		var username, avatar, title, thumb sql.NullString
		err := rows.Scan(&e.ScoreID, &e.Score, &e.CompletionTime, &e.Moves, &e.Difficulty, &e.CompletedAt,
			&username, &avatar, &title, &thumb)
		if err != nil {
			return nil, err
		}

		e.Rank = len(entries) + 1
		e.User = models.LeaderboardUser{Username: guestUsername}
		if username.Valid {
			e.User.Username = username.String
			if avatar.Valid {
				e.User.Avatar = &avatar.String
			}
		}
		if withPuzzle {
			e.Puzzle = &models.LeaderboardPuzzle{Title: unknownPuzzle}
			if title.Valid {
				e.Puzzle.Title = title.String
				if thumb.Valid {
					e.Puzzle.ThumbnailURL = &thumb.String
				}
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanScore(row rowScanner) (models.Score, error) {
	var s models.Score
	var reason sql.NullString
	err := row.Scan(&s.ID, &s.UserID, &s.PuzzleID, &s.CompletionTime, &s.Moves, &s.Difficulty,
		&s.Score, &s.IsValidated, &reason, &s.CompletedAt)
	if err != nil {
		return models.Score{}, err
	}
	if reason.Valid {
		s.FlagReason = &reason.String
	}
	return s, nil
}
