package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/mavi-puzzle/cliparse"
	"github.com/danielhkuo/mavi-puzzle/db"
	"github.com/danielhkuo/mavi-puzzle/imagecdn"
	"github.com/danielhkuo/mavi-puzzle/live"
	"github.com/danielhkuo/mavi-puzzle/middleware"
	"github.com/danielhkuo/mavi-puzzle/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; real deployments use the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		slog.Error("invalid database type", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}

	// Connect and verify
	conn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(conn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", dialect)

	cdn := imagecdn.NewClient(imagecdn.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.Folder,
	})
	if !cfg.UploadsEnabled() {
		slog.Warn("Cloudinary credentials incomplete, puzzle uploads disabled")
	}
	if cfg.AdminKey == "" {
		slog.Warn("ADMIN_KEY not set, admin routes are open")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := live.NewHub(cfg.AllowedOrigin)
	go hub.Run(ctx)

	// Create router
	mux := router.NewRouter(conn, cfg, cdn, hub)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(cfg.AllowedOrigin, mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	idle := make(chan struct{})
	go func() {
		defer close(idle)
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		return
	}
	<-idle
	slog.Info("Server closed", "error", err)
}
