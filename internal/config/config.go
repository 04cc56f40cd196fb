// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

const (
	DefaultAPIURL          = "https://dynalist.io/api/v1/"
	DefaultDeveloperURL    = "https://dynalist.io/developer"
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultRefreshInterval = 5 * time.Minute
	DefaultListenAddr      = "127.0.0.1:8080"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath          string
	APIURL          string
	DeveloperURL    string
	SecretKey       []byte // nil when no key is configured
	HTTPTimeout     time.Duration
	RefreshInterval time.Duration
	InsertPosition  model.InsertPosition
	ListenAddr      string
	LogLevel        slog.Level
}

// HasSecretKey reports whether stored credentials will be encrypted.
func (c *Config) HasSecretKey() bool {
	return c.SecretKey != nil
}

// DefaultDBPath returns the database location used when
// QUICKDYNALIST_DB_PATH is unset: quickdynalist/quickdynalist.db under the
// user's config directory, or the working directory if that is unknown.
func DefaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "quickdynalist.db"
	}
	return filepath.Join(dir, "quickdynalist", "quickdynalist.db")
}

// Load reads configuration from environment variables and returns a validated Config.
// Every variable is optional. Defaults: QUICKDYNALIST_DB_PATH (DefaultDBPath),
// QUICKDYNALIST_API_URL (https://dynalist.io/api/v1/),
// QUICKDYNALIST_DEVELOPER_URL (https://dynalist.io/developer),
// QUICKDYNALIST_HTTP_TIMEOUT (30s), QUICKDYNALIST_REFRESH_INTERVAL (5m),
// QUICKDYNALIST_INSERT_POSITION (top), QUICKDYNALIST_LISTEN_ADDR
// (127.0.0.1:8080), QUICKDYNALIST_LOG_LEVEL (warn). QUICKDYNALIST_SECRET_KEY,
// when set, must be 64 hex characters.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:          DefaultDBPath(),
		APIURL:          DefaultAPIURL,
		DeveloperURL:    DefaultDeveloperURL,
		HTTPTimeout:     DefaultHTTPTimeout,
		RefreshInterval: DefaultRefreshInterval,
		InsertPosition:  model.InsertPositionTop,
		ListenAddr:      DefaultListenAddr,
		LogLevel:        slog.LevelWarn,
	}

	if v, ok := os.LookupEnv("QUICKDYNALIST_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}

	if v, ok := os.LookupEnv("QUICKDYNALIST_API_URL"); ok && v != "" {
		if err := validateHTTPURL(v); err != nil {
			return nil, fmt.Errorf("QUICKDYNALIST_API_URL: %w", err)
		}
		cfg.APIURL = v
	}

	if v, ok := os.LookupEnv("QUICKDYNALIST_DEVELOPER_URL"); ok && v != "" {
		if err := validateHTTPURL(v); err != nil {
			return nil, fmt.Errorf("QUICKDYNALIST_DEVELOPER_URL: %w", err)
		}
		cfg.DeveloperURL = v
	}

	if v, ok := os.LookupEnv("QUICKDYNALIST_SECRET_KEY"); ok && v != "" {
		key, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("QUICKDYNALIST_SECRET_KEY is not valid hex: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("QUICKDYNALIST_SECRET_KEY must be 64 hex characters (32 bytes), got %d bytes", len(key))
		}
		cfg.SecretKey = key
	}

	var err error
	if cfg.HTTPTimeout, err = durationEnv("QUICKDYNALIST_HTTP_TIMEOUT", cfg.HTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = durationEnv("QUICKDYNALIST_REFRESH_INTERVAL", cfg.RefreshInterval); err != nil {
		return nil, err
	}

	if v, ok := os.LookupEnv("QUICKDYNALIST_INSERT_POSITION"); ok && v != "" {
		switch pos := model.InsertPosition(strings.ToLower(strings.TrimSpace(v))); pos {
		case model.InsertPositionTop, model.InsertPositionBottom:
			cfg.InsertPosition = pos
		default:
			return nil, fmt.Errorf("QUICKDYNALIST_INSERT_POSITION must be top or bottom, got %q", v)
		}
	}

	if v, ok := os.LookupEnv("QUICKDYNALIST_LISTEN_ADDR"); ok && v != "" {
		cfg.ListenAddr = v
	}

	if v, ok := os.LookupEnv("QUICKDYNALIST_LOG_LEVEL"); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("QUICKDYNALIST_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return cfg, nil
}

// durationEnv parses a positive duration from key, returning def when unset.
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", key, v, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, parsed)
	}
	return parsed, nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}
