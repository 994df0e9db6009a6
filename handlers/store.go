// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/danielhkuo/mavi-puzzle/db"
	"github.com/danielhkuo/mavi-puzzle/models"
)

var errBadParam = errors.New("invalid query parameter")

// Broadcaster publishes live leaderboard events
type Broadcaster interface {
	Broadcast(event, puzzleID string, data interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, string, interface{}) {}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

const puzzleColumns = `id, title, description, category, tags, image_public_id, image_url,
	image_width, image_height, image_format, thumbnail_url, piece_data, difficulty_available,
	total_plays, total_completions, average_completion_time, status, is_featured,
	display_order, created_at, updated_at, created_by`

// scanPuzzle reads one row selected with puzzleColumns
func scanPuzzle(row rowScanner) (models.Puzzle, error) {
	var p models.Puzzle
	var description, createdBy sql.NullString
	var tags, pieceData, available string

	err := row.Scan(
		&p.ID, &p.Title, &description, &p.Category, &tags,
		&p.OriginalImage.PublicID, &p.OriginalImage.URL,
		&p.OriginalImage.Width, &p.OriginalImage.Height, &p.OriginalImage.Format,
		&p.ThumbnailURL, &pieceData, &available,
		&p.Metadata.TotalPlays, &p.Metadata.TotalCompletions, &p.Metadata.AverageCompletionTime,
		&p.Status, &p.IsFeatured, &p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt, &createdBy,
	)
	if err != nil {
		return models.Puzzle{}, err
	}

	if description.Valid {
		p.Description = &description.String
	}
	if createdBy.Valid {
		p.CreatedBy = &createdBy.String
	}
	if err := decodeJSONColumn(tags, &p.Tags); err != nil {
		return models.Puzzle{}, fmt.Errorf("puzzle %s tags: %w", p.ID, err)
	}
	if err := decodeJSONColumn(pieceData, &p.PieceData); err != nil {
		return models.Puzzle{}, fmt.Errorf("puzzle %s piece_data: %w", p.ID, err)
	}
	if err := decodeJSONColumn(available, &p.DifficultyAvailable); err != nil {
		return models.Puzzle{}, fmt.Errorf("puzzle %s difficulty_available: %w", p.ID, err)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.DifficultyAvailable == nil {
		p.DifficultyAvailable = []string{}
	}
	return p, nil
}

// loadPuzzle fetches one puzzle; returns sql.ErrNoRows when missing
func loadPuzzle(conn *db.DB, puzzleID string) (models.Puzzle, error) {
	row := conn.QueryRow("SELECT "+puzzleColumns+" FROM puzzle WHERE id = ?", puzzleID)
	return scanPuzzle(row)
}

// puzzleFilter holds the list query parameters
type puzzleFilter struct {
	Status     string
	Category   string
	IsFeatured *bool
	Skip       int
	Limit      int
}

// parsePuzzleFilter reads status, category, is_featured, skip and limit.
// defaultStatus applies when the status parameter is absent.
func parsePuzzleFilter(r *http.Request, defaultStatus string) (puzzleFilter, error) {
	q := r.URL.Query()
	f := puzzleFilter{
		Status:   q.Get("status"),
		Category: q.Get("category"),
	}
	if !q.Has("status") {
		f.Status = defaultStatus
	}
	if f.Status != "" && !models.ValidStatus(f.Status) {
		return f, fmt.Errorf("%w: status %q", errBadParam, f.Status)
	}

	if v := q.Get("is_featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return f, fmt.Errorf("%w: is_featured %q", errBadParam, v)
		}
		f.IsFeatured = &featured
	}

	var err error
	if f.Skip, err = intParam(r, "skip", 0, 0); err != nil {
		return f, err
	}
	if f.Limit, err = intParam(r, "limit", 50, maxListLimit); err != nil {
		return f, err
	}
	return f, nil
}

const maxListLimit = 500

// listPuzzles runs a filtered, paged puzzle query. Piece data is left
// out of list results.
func listPuzzles(conn *db.DB, f puzzleFilter) ([]models.Puzzle, error) {
	var where []string
	var args []any

	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.IsFeatured != nil {
		where = append(where, "is_featured = ?")
		args = append(args, *f.IsFeatured)
	}

	query := "SELECT " + puzzleColumns + " FROM puzzle"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY display_order ASC, created_at DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Skip)

	rows, err := conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	puzzles := []models.Puzzle{}
	for rows.Next() {
		p, err := scanPuzzle(rows)
		if err != nil {
			return nil, err
		}
		p.PieceData = nil
		puzzles = append(puzzles, p)
	}
	return puzzles, rows.Err()
}

// intParam parses a non-negative integer query parameter.
// max <= 0 means no upper bound; larger values are clamped.
func intParam(r *http.Request, name string, def, max int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s %q", errBadParam, name, v)
	}
	if max > 0 && n > max {
		n = max
	}
	return n, nil
}

func encodeJSONColumn(v any) (string, error) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeJSONColumn(s string, v any) error {
	if s == "" {
		return nil
	}
	return sonic.UnmarshalString(s, v)
}
