package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the client settings.
type Config struct {
	BaseURL        string
	DownloadDir    string
	LogFile        string
	LogLevel       string
	RequestTimeout time.Duration
	Locale         string
}

const (
	defaultConfigPath  = "~/.config/defectscope/config.toml"
	defaultBaseURL     = "http://127.0.0.1:8000"
	defaultDownloadDir = "~/Downloads"
	defaultLogFile     = "~/.local/state/defectscope/defectscope.log"
	defaultLogLevel    = "info"
	defaultLocale      = "en"

	// EnvBaseURL and EnvLocale override the file values when set.
	EnvBaseURL = "DEFECTSCOPE_BASE_URL"
	EnvLocale  = "DEFECTSCOPE_LOCALE"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw struct {
		BaseURL               string `toml:"base_url"`
		DownloadDir           string `toml:"download_dir"`
		LogFile               string `toml:"log_file"`
		LogLevel              string `toml:"log_level"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		Locale                string `toml:"locale"`
	}

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if v, ok := os.LookupEnv(EnvBaseURL); ok && strings.TrimSpace(v) != "" {
		raw.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvLocale); ok && strings.TrimSpace(v) != "" {
		raw.Locale = v
	}

	if raw.RequestTimeoutSeconds < 0 {
		return Config{}, fmt.Errorf("request_timeout_seconds must be >= 0, got %d", raw.RequestTimeoutSeconds)
	}

	cfg := Config{
		BaseURL:        strings.TrimRight(orDefault(raw.BaseURL, defaultBaseURL), "/"),
		DownloadDir:    mustExpand(orDefault(raw.DownloadDir, defaultDownloadDir)),
		LogFile:        mustExpand(orDefault(raw.LogFile, defaultLogFile)),
		LogLevel:       strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel)),
		RequestTimeout: time.Duration(raw.RequestTimeoutSeconds) * time.Second,
		Locale:         strings.ToLower(orDefault(raw.Locale, defaultLocale)),
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotenv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotenv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
	}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
