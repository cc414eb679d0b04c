// File path: internal/catalog/config.go
package catalog

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls the SQLite-backed report catalog.
type Config struct {
	Path string

	MaxOpenConns int
	MaxIdleConns int
	BusyTimeout  time.Duration
}

// LoadConfig reads catalog settings from the environment, applying defaults
// for anything unset.
func LoadConfig() Config {
	cfg := Config{
		Path:         "data/reports.db",
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		BusyTimeout:  5 * time.Second,
	}
	if path := strings.TrimSpace(os.Getenv("REPORTBOT_CATALOG_PATH")); path != "" {
		cfg.Path = path
	}
	if raw := strings.TrimSpace(os.Getenv("REPORTBOT_CATALOG_MAX_CONNS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			cfg.MaxOpenConns = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv("REPORTBOT_CATALOG_BUSY_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			cfg.BusyTimeout = parsed
		}
	}
	return cfg
}

// Merge overlays non-zero override fields onto the base configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.Path) != "" {
		result.Path = strings.TrimSpace(override.Path)
	}
	if override.MaxOpenConns > 0 {
		result.MaxOpenConns = override.MaxOpenConns
	}
	if override.MaxIdleConns > 0 {
		result.MaxIdleConns = override.MaxIdleConns
	}
	if override.BusyTimeout > 0 {
		result.BusyTimeout = override.BusyTimeout
	}
	return result
}
