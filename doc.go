// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the MAVI Puzzle API server.

MAVI Puzzle serves jigsaw puzzles cut from historical photographs. Images
live on Cloudinary; each piece is a delivery URL that crops a square
canonical render of the photo, so no image processing happens here.

# Starting the Server

Configuration comes from flags, environment variables (a .env file is
loaded first when present) and an optional YAML file:

	DATABASE_URL=mavi.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string

Optional settings:

  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PORT (-p): Server port (default: 3318)
  - ADMIN_KEY (--admin-key): Protects /api/admin; generate with puzzlectl keygen
  - ALLOWED_ORIGIN (--origin): CORS origin (default: *)
  - LOG_LEVEL (--log-level): debug, info, warn or error
  - CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET: Enable uploads
  - CLOUDINARY_FOLDER: Upload folder (default: mavi-puzzles)
  - CONFIG_FILE (-c): YAML file with the same keys

# Architecture

  - handlers: HTTP request handlers (puzzles, scores, users, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin key check, JSON helpers
  - puzzle: Difficulty grids and piece rectangles
  - scoring: Score formula and achievements
  - imagecdn: Cloudinary upload and delivery URLs
  - live: Websocket score feed
  - models: Request/response types
  - auth: IDs and admin keys
  - db: Connection, dialect rebinding and schema
  - cliparse: Configuration parsing

The puzzlectl command in cmd/puzzlectl inspects grids, scores and
leaderboards from a terminal.

See package documentation for each component.
*/
package main
