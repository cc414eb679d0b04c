// File path: internal/config/config.go

// Package config carries the top-level bot configuration, read from the
// environment with flag overrides merged on top.
package config

import (
	"errors"
	"os"
	"strings"
)

// Transport modes.
const (
	ModePoll    = "poll"
	ModeWebhook = "webhook"
)

// Config is the bot's runtime configuration.
type Config struct {
	TelegramToken  string
	TelegramAPIURL string
	Mode           string
	Addr           string
	CatalogPath    string
	OutputDir      string
	DocumentFormat string
}

// LoadConfig reads configuration from the environment, applying defaults.
func LoadConfig() Config {
	cfg := Config{
		Mode:           ModePoll,
		Addr:           ":8090",
		OutputDir:      "resources",
		DocumentFormat: "markdown",
	}
	cfg.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	if v := strings.TrimSpace(os.Getenv("TELEGRAM_API_URL")); v != "" {
		cfg.TelegramAPIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("REPORTBOT_MODE")); v != "" {
		cfg.Mode = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("REPORTBOT_ADDR")); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("REPORTBOT_CATALOG_PATH")); v != "" {
		cfg.CatalogPath = v
	}
	if v := strings.TrimSpace(os.Getenv("REPORTBOT_OUTPUT_DIR")); v != "" {
		cfg.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv("REPORTBOT_DOC_FORMAT")); v != "" {
		cfg.DocumentFormat = strings.ToLower(v)
	}
	return cfg
}

// Merge overlays non-empty override fields onto the base configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.TelegramToken) != "" {
		result.TelegramToken = strings.TrimSpace(override.TelegramToken)
	}
	if strings.TrimSpace(override.TelegramAPIURL) != "" {
		result.TelegramAPIURL = strings.TrimSpace(override.TelegramAPIURL)
	}
	if strings.TrimSpace(override.Mode) != "" {
		result.Mode = strings.ToLower(strings.TrimSpace(override.Mode))
	}
	if strings.TrimSpace(override.Addr) != "" {
		result.Addr = strings.TrimSpace(override.Addr)
	}
	if strings.TrimSpace(override.CatalogPath) != "" {
		result.CatalogPath = strings.TrimSpace(override.CatalogPath)
	}
	if strings.TrimSpace(override.OutputDir) != "" {
		result.OutputDir = strings.TrimSpace(override.OutputDir)
	}
	if strings.TrimSpace(override.DocumentFormat) != "" {
		result.DocumentFormat = strings.ToLower(strings.TrimSpace(override.DocumentFormat))
	}
	return result
}

// Validate checks the configuration for a runnable combination.
func (c Config) Validate() error {
	if c.TelegramToken == "" {
		return errors.New("telegram token required")
	}
	switch c.Mode {
	case ModePoll:
	case ModeWebhook:
		if strings.TrimSpace(c.Addr) == "" {
			return errors.New("listen address required in webhook mode")
		}
	default:
		return errors.New("mode must be poll or webhook")
	}
	return nil
}
