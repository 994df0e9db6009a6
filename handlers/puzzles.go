// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/mavi-puzzle/db"
	"github.com/danielhkuo/mavi-puzzle/middleware"
	"github.com/danielhkuo/mavi-puzzle/models"
	"github.com/danielhkuo/mavi-puzzle/puzzle"
	"github.com/danielhkuo/mavi-puzzle/scoring"
)

type PuzzleHandler struct {
	db *db.DB
}

func NewPuzzleHandler(conn *db.DB) *PuzzleHandler {
	return &PuzzleHandler{db: conn}
}

// ListDifficulties handles GET /api/difficulties
func (h *PuzzleHandler) ListDifficulties(w http.ResponseWriter, r *http.Request) {
	infos := make([]models.DifficultyInfo, 0, len(puzzle.Difficulties))
	for _, d := range puzzle.Difficulties {
		g, err := puzzle.GridFor(d)
		if err != nil {
			// Grid table is validated at init
			slog.Error("grid lookup failed", "difficulty", d, "error", err)
			continue
		}
		infos = append(infos, models.DifficultyInfo{
			Difficulty:  string(d),
			Rows:        g.Rows,
			Cols:        g.Cols,
			Pieces:      g.Pieces(),
			PieceWidth:  g.PieceWidth(),
			PieceHeight: g.PieceHeight(),
			Multiplier:  scoring.Multiplier(string(d)),
		})
	}
	middleware.JSONResponse(w, http.StatusOK, infos)
}

// ListAchievements handles GET /api/achievements
func (h *PuzzleHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, scoring.Catalog())
}

// ListPuzzles handles GET /api/puzzles
func (h *PuzzleHandler) ListPuzzles(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePuzzleFilter(r, models.StatusPublished)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	puzzles, err := listPuzzles(h.db, filter)
	if err != nil {
		slog.Error("failed to list puzzles", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, puzzles)
}

// GetPuzzle handles GET /api/puzzles/{id}
func (h *PuzzleHandler) GetPuzzle(w http.ResponseWriter, r *http.Request) {
	p, ok := fetchPuzzle(w, h.db, r.PathValue("id"), true)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// GetPieces handles GET /api/puzzles/{id}/pieces/{difficulty}
func (h *PuzzleHandler) GetPieces(w http.ResponseWriter, r *http.Request) {
	servePieces(w, r, h.db, true)
}

// RecordPlay handles POST /api/puzzles/{id}/plays
func (h *PuzzleHandler) RecordPlay(w http.ResponseWriter, r *http.Request) {
	puzzleID := r.PathValue("id")

	res, err := h.db.Exec("UPDATE puzzle SET total_plays = total_plays + 1 WHERE id = ?", puzzleID)
	if err != nil {
		slog.Error("failed to record play", "puzzle_id", puzzleID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Puzzle not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Success: true, Message: "Play recorded"})
}

// fetchPuzzle loads a puzzle and writes the error response when it can't.
// With publishedOnly, drafts and archived puzzles are reported as missing.
func fetchPuzzle(w http.ResponseWriter, conn *db.DB, puzzleID string, publishedOnly bool) (models.Puzzle, bool) {
	if puzzleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "puzzle_id is required")
		return models.Puzzle{}, false
	}

	p, err := loadPuzzle(conn, puzzleID)
	if err == nil && publishedOnly && p.Status != models.StatusPublished {
		err = sql.ErrNoRows
	}
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Puzzle not found")
		return models.Puzzle{}, false
	}
	if err != nil {
		slog.Error("failed to load puzzle", "puzzle_id", puzzleID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Puzzle{}, false
	}
	return p, true
}

// servePieces pairs the stored piece URLs with their grid rects
func servePieces(w http.ResponseWriter, r *http.Request, conn *db.DB, publishedOnly bool) {
	p, ok := fetchPuzzle(w, conn, r.PathValue("id"), publishedOnly)
	if !ok {
		return
	}

	label := r.PathValue("difficulty")
	d, err := puzzle.ParseDifficulty(label)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid difficulty '"+label+"'")
		return
	}

	urls, ok := p.PieceData[string(d)]
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Difficulty '"+label+"' not available for this puzzle")
		return
	}

	g, _ := puzzle.GridFor(d)
	rects, _ := puzzle.PieceRects(d)
	if len(urls) != len(rects) {
		slog.Error("stored piece count mismatch",
			"puzzle_id", p.ID,
			"difficulty", d,
			"stored", len(urls),
			"expected", len(rects),
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Corrupt piece data")
		return
	}

	pieces := make([]models.Piece, len(rects))
	for i, rect := range rects {
		pieces[i] = models.Piece{PieceRect: rect, URL: urls[i]}
	}

	middleware.JSONResponse(w, http.StatusOK, models.PiecesResponse{
		PuzzleID:      p.ID,
		Difficulty:    string(d),
		Rows:          g.Rows,
		Cols:          g.Cols,
		CanonicalSize: puzzle.CanonicalSize,
		Pieces:        pieces,
		Total:         len(pieces),
	})
}
