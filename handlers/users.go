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
	"github.com/danielhkuo/mavi-puzzle/middleware"
	"github.com/danielhkuo/mavi-puzzle/models"
)

const maxUsernameLength = 50

type UserHandler struct {
	db *db.DB
}

func NewUserHandler(conn *db.DB) *UserHandler {
	return &UserHandler{db: conn}
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if len(req.Username) > maxUsernameLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is too long")
		return
	}
	if req.Username == models.GuestUserID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is reserved")
		return
	}

	var existing string
	err := h.db.QueryRow("SELECT id FROM app_user WHERE email = ?", req.Email).Scan(&existing)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.User{
		ID:        auth.NewID(),
		Email:     req.Email,
		Username:  req.Username,
		Avatar:    req.Avatar,
		Role:      models.RolePlayer,
		CreatedAt: time.Now().UTC(),
	}

	_, err = h.db.Exec(`
		INSERT INTO app_user (id, email, username, avatar, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.Username, user.Avatar, user.Role, user.CreatedAt)
	if err != nil {
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	slog.Info("user created", "user_id", user.ID, "username", user.Username)

	middleware.JSONResponse(w, http.StatusCreated, user)
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	var u models.User
	var avatar sql.NullString
	err := h.db.QueryRow(`
		SELECT id, email, username, avatar, role, total_puzzles_completed, total_play_time, created_at
		FROM app_user WHERE id = ?
	`, userID).Scan(&u.ID, &u.Email, &u.Username, &avatar, &u.Role,
		&u.Stats.TotalPuzzlesCompleted, &u.Stats.TotalPlayTime, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if avatar.Valid {
		u.Avatar = &avatar.String
	}
	if u.Stats.TotalPuzzlesCompleted > 0 {
		u.Stats.AverageCompletionTime = u.Stats.TotalPlayTime / int64(u.Stats.TotalPuzzlesCompleted)
	}

	middleware.JSONResponse(w, http.StatusOK, u)
}
