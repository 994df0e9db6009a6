// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/mavi-puzzle/auth"
	"github.com/danielhkuo/mavi-puzzle/db"
	"github.com/danielhkuo/mavi-puzzle/imagecdn"
	"github.com/danielhkuo/mavi-puzzle/middleware"
	"github.com/danielhkuo/mavi-puzzle/models"
	"github.com/danielhkuo/mavi-puzzle/puzzle"
)

// MaxUploadBytes caps the multipart upload size
const MaxUploadBytes = 20 << 20

const cdnTimeout = 30 * time.Second

type AdminHandler struct {
	db  *db.DB
	cdn imagecdn.Service
}

func NewAdminHandler(conn *db.DB, cdn imagecdn.Service) *AdminHandler {
	return &AdminHandler{db: conn, cdn: cdn}
}

// UploadPuzzle handles POST /api/admin/puzzles
func (h *AdminHandler) UploadPuzzle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "File must be an image")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read file")
		return
	}
	if _, err := imagecdn.Inspect(data); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "File must be an image")
		return
	}

	p := models.Puzzle{
		ID:       auth.NewID(),
		Title:    strings.TrimSpace(r.FormValue("title")),
		Category: strings.TrimSpace(r.FormValue("category")),
		Status:   r.FormValue("status"),
	}
	if p.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if desc := strings.TrimSpace(r.FormValue("description")); desc != "" {
		p.Description = &desc
	}
	if p.Category == "" {
		p.Category = models.DefaultCategory
	}
	if p.Status == "" {
		p.Status = models.StatusPublished
	}
	if !models.ValidStatus(p.Status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid status '"+p.Status+"'")
		return
	}

	p.Tags = []string{}
	p.DifficultyAvailable = append([]string(nil), models.DefaultDifficulties...)
	if err := decodeFormJSON(r.FormValue("tags"), &p.Tags); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON in tags or difficulty_available")
		return
	}
	if err := decodeFormJSON(r.FormValue("difficulty_available"), &p.DifficultyAvailable); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON in tags or difficulty_available")
		return
	}
	if err := validateDifficulties(p.DifficultyAvailable); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if v := r.FormValue("is_featured"); v != "" {
		if p.IsFeatured, err = strconv.ParseBool(v); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid is_featured")
			return
		}
	}
	if v := r.FormValue("display_order"); v != "" {
		if p.DisplayOrder, err = strconv.Atoi(v); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid display_order")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), cdnTimeout)
	defer cancel()

	result, err := h.cdn.Upload(ctx, header.Filename, data)
	if err != nil {
		slog.Error("image upload failed", "filename", header.Filename, "error", err)
		if errors.Is(err, imagecdn.ErrNotConfigured) {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Image uploads are not configured")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadGateway, "Image upload failed")
		return
	}

	p.OriginalImage = models.PuzzleImage{
		PublicID: result.PublicID,
		URL:      result.URL,
		Width:    result.Width,
		Height:   result.Height,
		Format:   result.Format,
	}
	p.ThumbnailURL = h.cdn.ThumbnailURL(result.PublicID)
	p.PieceData = imagecdn.PieceURLs(h.cdn, puzzle.AllDifficultyPieceRects(result.PublicID))
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt

	if err := h.insertPuzzle(p); err != nil {
		slog.Error("failed to insert puzzle", "puzzle_id", p.ID, "error", err)
		// Best-effort cleanup of the uploaded image
		if derr := h.cdn.Destroy(ctx, result.PublicID); derr != nil {
			slog.Warn("failed to remove orphaned image", "public_id", result.PublicID, "error", derr)
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create puzzle")
		return
	}

	slog.Info("puzzle created", "puzzle_id", p.ID, "title", p.Title, "public_id", result.PublicID)

	middleware.JSONResponse(w, http.StatusCreated, p)
}

func (h *AdminHandler) insertPuzzle(p models.Puzzle) error {
	tags, err := encodeJSONColumn(p.Tags)
	if err != nil {
		return err
	}
	pieces, err := encodeJSONColumn(p.PieceData)
	if err != nil {
		return err
	}
	available, err := encodeJSONColumn(p.DifficultyAvailable)
	if err != nil {
		return err
	}

	_, err = h.db.Exec(`
		INSERT INTO puzzle (id, title, description, category, tags, image_public_id, image_url,
			image_width, image_height, image_format, thumbnail_url, piece_data, difficulty_available,
			status, is_featured, display_order, created_at, updated_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Title, p.Description, p.Category, tags,
		p.OriginalImage.PublicID, p.OriginalImage.URL, p.OriginalImage.Width, p.OriginalImage.Height, p.OriginalImage.Format,
		p.ThumbnailURL, pieces, available,
		p.Status, p.IsFeatured, p.DisplayOrder, p.CreatedAt, p.UpdatedAt, p.CreatedBy)
	return err
}

// ListPuzzles handles GET /api/admin/puzzles
func (h *AdminHandler) ListPuzzles(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePuzzleFilter(r, "")
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

// GetPuzzle handles GET /api/admin/puzzles/{id}
func (h *AdminHandler) GetPuzzle(w http.ResponseWriter, r *http.Request) {
	p, ok := fetchPuzzle(w, h.db, r.PathValue("id"), false)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// GetPieces handles GET /api/admin/puzzles/{id}/pieces/{difficulty}
func (h *AdminHandler) GetPieces(w http.ResponseWriter, r *http.Request) {
	servePieces(w, r, h.db, false)
}

// UpdatePuzzle handles PUT /api/admin/puzzles/{id}
func (h *AdminHandler) UpdatePuzzle(w http.ResponseWriter, r *http.Request) {
	puzzleID := r.PathValue("id")
	if _, ok := fetchPuzzle(w, h.db, puzzleID, false); !ok {
		return
	}

	var req models.UpdatePuzzleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sets, args, err := updateClauses(req)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(sets) > 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, time.Now().UTC(), puzzleID)
		_, err := h.db.Exec("UPDATE puzzle SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			slog.Error("failed to update puzzle", "puzzle_id", puzzleID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update puzzle")
			return
		}
		slog.Info("puzzle updated", "puzzle_id", puzzleID, "fields", len(sets)-1)
	}

	p, ok := fetchPuzzle(w, h.db, puzzleID, false)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// updateClauses turns the set fields of req into SET clauses
func updateClauses(req models.UpdatePuzzleRequest) ([]string, []any, error) {
	var sets []string
	var args []any

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, nil, errors.New("title cannot be empty")
		}
		sets = append(sets, "title = ?")
		args = append(args, title)
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *req.Category)
	}
	if req.Tags != nil {
		tags, err := encodeJSONColumn(*req.Tags)
		if err != nil {
			return nil, nil, err
		}
		sets = append(sets, "tags = ?")
		args = append(args, tags)
	}
	if req.DifficultyAvailable != nil {
		if err := validateDifficulties(*req.DifficultyAvailable); err != nil {
			return nil, nil, err
		}
		available, err := encodeJSONColumn(*req.DifficultyAvailable)
		if err != nil {
			return nil, nil, err
		}
		sets = append(sets, "difficulty_available = ?")
		args = append(args, available)
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, nil, fmt.Errorf("invalid status '%s'", *req.Status)
		}
		sets = append(sets, "status = ?")
		args = append(args, *req.Status)
	}
	if req.IsFeatured != nil {
		sets = append(sets, "is_featured = ?")
		args = append(args, *req.IsFeatured)
	}
	if req.DisplayOrder != nil {
		sets = append(sets, "display_order = ?")
		args = append(args, *req.DisplayOrder)
	}
	return sets, args, nil
}

// DeletePuzzle handles DELETE /api/admin/puzzles/{id}
func (h *AdminHandler) DeletePuzzle(w http.ResponseWriter, r *http.Request) {
	p, ok := fetchPuzzle(w, h.db, r.PathValue("id"), false)
	if !ok {
		return
	}

	// The row goes even when the CDN delete fails
	ctx, cancel := context.WithTimeout(r.Context(), cdnTimeout)
	defer cancel()
	if err := h.cdn.Destroy(ctx, p.OriginalImage.PublicID); err != nil {
		slog.Warn("failed to delete image", "puzzle_id", p.ID, "public_id", p.OriginalImage.PublicID, "error", err)
	}

	if _, err := h.db.Exec("DELETE FROM puzzle WHERE id = ?", p.ID); err != nil {
		slog.Error("failed to delete puzzle", "puzzle_id", p.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete puzzle")
		return
	}

	slog.Info("puzzle deleted", "puzzle_id", p.ID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Success: true, Message: "Puzzle deleted successfully"})
}

// validateDifficulties rejects any label without a grid
func validateDifficulties(labels []string) error {
	for _, label := range labels {
		if _, err := puzzle.ParseDifficulty(label); err != nil {
			return fmt.Errorf("invalid difficulty '%s'", label)
		}
	}
	return nil
}

func decodeFormJSON(value string, v any) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return decodeJSONColumn(value, v)
}
