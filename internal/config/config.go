package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sitegen/internal/relation"
)

// Config holds all configuration for the application.
type Config struct {
	ContentDir      string
	OutputDir       string
	ThemeDir        string
	StaticDir       string
	SiteFile        string
	DBPath          string
	APIPort         string
	BaseURL         string
	PageSize        int
	BackLinkLimit   int
	RelatedLimit    int
	RelatedStrategy relation.Strategy
	RenderWorkers   int
	RebuildInterval time.Duration
	RequireContent  bool
	LogLevel        slog.Level
	LogFormat       string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		ContentDir: getEnv("CONTENT_DIR", "./content"),
		OutputDir:  getEnv("OUTPUT_DIR", "./public"),
		ThemeDir:   getEnv("THEME_DIR", ""),
		StaticDir:  getEnv("STATIC_DIR", "./static"),
		SiteFile:   getEnv("SITE_FILE", "./site.yaml"),
		DBPath:     getEnv("DB_PATH", "./data/sitegen.db"),
		APIPort:    getEnv("API_PORT", "9000"),
		BaseURL:    getEnv("BASE_URL", ""),
		LogFormat:  strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if cfg.PageSize, err = getPositiveInt("PAGE_SIZE", 10); err != nil {
		return nil, err
	}
	if cfg.RenderWorkers, err = getPositiveInt("RENDER_WORKERS", runtime.NumCPU()); err != nil {
		return nil, err
	}
	if cfg.BackLinkLimit, err = getLimit("BACKLINK_LIMIT", relation.DefaultBackLinkLimit); err != nil {
		return nil, err
	}
	if cfg.RelatedLimit, err = getLimit("RELATED_LIMIT", relation.DefaultRelatedLimit); err != nil {
		return nil, err
	}

	if cfg.RelatedStrategy, err = relation.ParseStrategy(getEnv("RELATED_TAG_STRATEGY", string(relation.FirstTagOnly))); err != nil {
		return nil, fmt.Errorf("RELATED_TAG_STRATEGY is invalid: %w", err)
	}

	interval := getEnv("REBUILD_INTERVAL", "10s")
	if cfg.RebuildInterval, err = time.ParseDuration(interval); err != nil {
		return nil, fmt.Errorf("REBUILD_INTERVAL must be a valid duration: %w", err)
	}
	if cfg.RebuildInterval < 0 {
		return nil, fmt.Errorf("REBUILD_INTERVAL must not be negative")
	}

	if raw := getEnv("REQUIRE_CONTENT", "false"); raw != "" {
		if cfg.RequireContent, err = strconv.ParseBool(raw); err != nil {
			return nil, fmt.Errorf("REQUIRE_CONTENT must be a boolean: %w", err)
		}
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if err := cfg.validatePaths(); err != nil {
		return nil, err
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// validatePaths rejects output directories that would overwrite the sources.
func (c *Config) validatePaths() error {
	if c.ContentDir == "" {
		return fmt.Errorf("CONTENT_DIR is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}

	content, err := filepath.Abs(c.ContentDir)
	if err != nil {
		return fmt.Errorf("failed to resolve CONTENT_DIR: %w", err)
	}
	output, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve OUTPUT_DIR: %w", err)
	}
	if content == output {
		return fmt.Errorf("OUTPUT_DIR must differ from CONTENT_DIR")
	}
	if rel, err := filepath.Rel(output, content); err == nil && !strings.HasPrefix(rel, "..") {
		return fmt.Errorf("OUTPUT_DIR must not contain CONTENT_DIR")
	}

	return nil
}

// NewLogger builds the slog logger described by the config.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return value, nil
}

// getLimit reads a list cap. Zero disables the list.
func getLimit(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return value, nil
}
