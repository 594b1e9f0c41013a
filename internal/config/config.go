// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the process needs at startup.
type Config struct {
	// APIKey is the Linear personal API key. Required; the process refuses
	// to start without it.
	APIKey string

	// LogLevel is the logrus level name. Defaults to "info".
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in when present; real environment variables win.
func Load() (*Config, error) {
	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:   os.Getenv("LINEAR_API_KEY"),
		LogLevel: os.Getenv("LINEAR_MCP_LOG_LEVEL"),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.APIKey == "" {
		return nil, errors.New("LINEAR_API_KEY is not set")
	}

	return cfg, nil
}

// ParseLogLevel converts the configured level name to a logrus level,
// falling back to info on garbage.
func (c *Config) ParseLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
