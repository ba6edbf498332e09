// Package config loads catfact settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/princespaghetti/catfact/internal/fetcher"
)

// DefaultEnvFile is loaded when present; a missing file is not an error.
const DefaultEnvFile = ".env"

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the resolved runtime settings.
type Config struct {
	URL       string        `env:"CATFACT_URL"`
	Timeout   time.Duration `env:"CATFACT_TIMEOUT" envDefault:"10s"`
	LogLevel  string        `env:"CATFACT_LOG_LEVEL" envDefault:"warn"`
	LogFormat string        `env:"CATFACT_LOG_FORMAT" envDefault:"text"`
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then parses Config from it.
// Values are not validated here so callers can apply overrides first; call
// Validate on the final Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{URL: fetcher.DefaultFactURL}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", c.URL, err)
	}
	if !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid URL %q: must be an absolute http(s) URL", c.URL)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s: must not be negative", c.Timeout)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	switch c.LogFormat {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: must be %q or %q", c.LogFormat, FormatText, FormatJSON)
	}

	return nil
}
