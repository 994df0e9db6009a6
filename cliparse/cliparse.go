package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          int    `yaml:"port"`
	DatabaseURL   string `yaml:"database_url"`
	DatabaseType  string `yaml:"database_type"`
	AdminKey      string `yaml:"admin_key"`
	AllowedOrigin string `yaml:"allowed_origin"`
	LogLevel      string `yaml:"log_level"`

	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
}

type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Folder    string `yaml:"folder"`
}

const (
	DefaultPort             = 3318
	DefaultDatabaseType     = "sqlite"
	DefaultAllowedOrigin    = "*"
	DefaultLogLevel         = "info"
	DefaultCloudinaryFolder = "mavi-puzzles"
)

// ParseFlags reads configuration with precedence flag > env > config file > default
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var configFile string

	fs := flag.NewFlagSet("mavi-puzzle", flag.ContinueOnError)

	fs.StringVar(&configFile, "c", "", "YAML config file")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.AllowedOrigin, "origin", "", "CORS allowed origin")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin API key (prefer env)")
	fs.StringVar(&cfg.Cloudinary.CloudName, "cloud-name", "", "Cloudinary cloud name")
	fs.StringVar(&cfg.Cloudinary.APIKey, "cloud-key", "", "Cloudinary API key (prefer env)")
	fs.StringVar(&cfg.Cloudinary.APISecret, "cloud-secret", "", "Cloudinary API secret (prefer env)")
	fs.StringVar(&cfg.Cloudinary.Folder, "cloud-folder", "", "Cloudinary upload folder")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		}
	}
	envFallback(&cfg.DatabaseURL, "DATABASE_URL")
	envFallback(&cfg.DatabaseType, "DATABASE_TYPE")
	envFallback(&cfg.AdminKey, "ADMIN_KEY")
	envFallback(&cfg.AllowedOrigin, "ALLOWED_ORIGIN")
	envFallback(&cfg.LogLevel, "LOG_LEVEL")
	envFallback(&cfg.Cloudinary.CloudName, "CLOUDINARY_CLOUD_NAME")
	envFallback(&cfg.Cloudinary.APIKey, "CLOUDINARY_API_KEY")
	envFallback(&cfg.Cloudinary.APISecret, "CLOUDINARY_API_SECRET")
	envFallback(&cfg.Cloudinary.Folder, "CLOUDINARY_FOLDER")

	// Then the config file
	envFallback(&configFile, "CONFIG_FILE")
	if configFile != "" {
		fileCfg, err := LoadFile(configFile)
		if err != nil {
			return Config{}, err
		}
		cfg = merge(cfg, fileCfg)
	}

	// Defaults
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = DefaultDatabaseType
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = DefaultAllowedOrigin
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Cloudinary.Folder == "" {
		cfg.Cloudinary.Folder = DefaultCloudinaryFolder
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	return cfg, nil
}

// LoadFile parses a YAML config file
func LoadFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// UploadsEnabled reports whether Cloudinary credentials are complete
func (c Config) UploadsEnabled() bool {
	return c.Cloudinary.CloudName != "" && c.Cloudinary.APIKey != "" && c.Cloudinary.APISecret != ""
}

// Level maps LogLevel to a slog level, defaulting to info
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func envFallback(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

// merge fills zero fields of cfg from file
func merge(cfg, file Config) Config {
	if cfg.Port == 0 {
		cfg.Port = file.Port
	}
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&cfg.DatabaseURL, file.DatabaseURL)
	fill(&cfg.DatabaseType, file.DatabaseType)
	fill(&cfg.AdminKey, file.AdminKey)
	fill(&cfg.AllowedOrigin, file.AllowedOrigin)
	fill(&cfg.LogLevel, file.LogLevel)
	fill(&cfg.Cloudinary.CloudName, file.Cloudinary.CloudName)
	fill(&cfg.Cloudinary.APIKey, file.Cloudinary.APIKey)
	fill(&cfg.Cloudinary.APISecret, file.Cloudinary.APISecret)
	fill(&cfg.Cloudinary.Folder, file.Cloudinary.Folder)
	return cfg
}
