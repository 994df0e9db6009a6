// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/mavi-puzzle/cliparse"
	"github.com/danielhkuo/mavi-puzzle/db"
	"github.com/danielhkuo/mavi-puzzle/handlers"
	"github.com/danielhkuo/mavi-puzzle/imagecdn"
	"github.com/danielhkuo/mavi-puzzle/live"
	"github.com/danielhkuo/mavi-puzzle/middleware"
	"github.com/danielhkuo/mavi-puzzle/models"
)

const (
	ServiceName = "MAVI Puzzle Game"
	Version     = "1.0.0"
)

func NewRouter(conn *db.DB, cfg cliparse.Config, cdn imagecdn.Service, hub *live.Hub) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	puzzleHandler := handlers.NewPuzzleHandler(conn)
	scoreHandler := handlers.NewScoreHandler(conn, hub)
	userHandler := handlers.NewUserHandler(conn)
	adminHandler := handlers.NewAdminHandler(conn, cdn)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
			Status:  "healthy",
			Service: ServiceName,
			Version: Version,
		})
	})

	// Catalogue (public)
	mux.HandleFunc("GET /api/difficulties", middleware.WithLogging(puzzleHandler.ListDifficulties))
	mux.HandleFunc("GET /api/achievements", middleware.WithLogging(puzzleHandler.ListAchievements))
	mux.HandleFunc("GET /api/puzzles", middleware.WithLogging(puzzleHandler.ListPuzzles))
	mux.HandleFunc("GET /api/puzzles/{id}", middleware.WithLogging(puzzleHandler.GetPuzzle))
	mux.HandleFunc("GET /api/puzzles/{id}/pieces/{difficulty}", middleware.WithLogging(puzzleHandler.GetPieces))
	mux.HandleFunc("POST /api/puzzles/{id}/plays", middleware.WithLogging(puzzleHandler.RecordPlay))

	// Scores (public)
	mux.HandleFunc("POST /api/scores", middleware.WithLogging(scoreHandler.SubmitScore))
	mux.HandleFunc("GET /api/scores/leaderboard", middleware.WithLogging(scoreHandler.Leaderboard))
	mux.HandleFunc("GET /api/scores/user/{user_id}", middleware.WithLogging(scoreHandler.UserScores))
	mux.HandleFunc("GET /api/scores/puzzle/{puzzle_id}", middleware.WithLogging(scoreHandler.PuzzleScores))

	// Live feed; the connection outlives the request log line
	mux.HandleFunc("GET /api/scores/live", hub.ServeWS)

	// Users
	mux.HandleFunc("POST /api/users", middleware.WithLogging(userHandler.CreateUser))
	mux.HandleFunc("GET /api/users/{id}", middleware.WithLogging(userHandler.GetUser))

	// Puzzle management (admin)
	mux.HandleFunc("POST /api/admin/puzzles", admin(adminHandler.UploadPuzzle))
	mux.HandleFunc("GET /api/admin/puzzles", admin(adminHandler.ListPuzzles))
	mux.HandleFunc("GET /api/admin/puzzles/{id}", admin(adminHandler.GetPuzzle))
	mux.HandleFunc("PUT /api/admin/puzzles/{id}", admin(adminHandler.UpdatePuzzle))
	mux.HandleFunc("DELETE /api/admin/puzzles/{id}", admin(adminHandler.DeletePuzzle))
	mux.HandleFunc("GET /api/admin/puzzles/{id}/pieces/{difficulty}", admin(adminHandler.GetPieces))

	// Score moderation (admin)
	mux.HandleFunc("DELETE /api/admin/scores/{id}", admin(scoreHandler.DeleteScore))
	mux.HandleFunc("POST /api/admin/scores/{id}/flag", admin(scoreHandler.FlagScore))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ServiceName + " API v" + Version))
	})

	return mux
}
