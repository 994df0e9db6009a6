// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite path or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKey: Key required in X-Admin-Key for admin routes (optional)
  - AllowedOrigin: CORS origin (default: *)
  - LogLevel: debug, info, warn or error (default: info)
  - Cloudinary: cloud name, API key/secret, upload folder (default: mavi-puzzles)

# CLI Flags

	-c             YAML config file
	-p             Server port
	-d             Database URL
	-t             Database type
	-origin        CORS allowed origin
	-log-level     Log level
	-admin-key     Admin API key
	-cloud-name    Cloudinary cloud name
	-cloud-key     Cloudinary API key
	-cloud-secret  Cloudinary API secret
	-cloud-folder  Cloudinary upload folder

# Environment Variables

Flags fall back to environment variables:

	CONFIG_FILE            → -c
	PORT                   → -p
	DATABASE_URL           → -d
	DATABASE_TYPE          → -t
	ALLOWED_ORIGIN         → -origin
	LOG_LEVEL              → -log-level
	ADMIN_KEY              → -admin-key
	CLOUDINARY_CLOUD_NAME  → -cloud-name
	CLOUDINARY_API_KEY     → -cloud-key
	CLOUDINARY_API_SECRET  → -cloud-secret
	CLOUDINARY_FOLDER      → -cloud-folder

# Config File

Values still unset after flags and environment are read from the YAML
file, then defaults apply:

	port: 3318
	database_url: ./mavi.db
	cloudinary:
	  cloud_name: museum
	  api_key: "1234"
	  api_secret: secret

# Validation

ParseFlags returns an error if DATABASE_URL is missing or PORT is not a
number. Missing Cloudinary credentials are not an error; UploadsEnabled
reports whether puzzle uploads can work.
*/
package cliparse
