/*
Package configs loads the server configuration from environment variables.

A `.env` file in the working directory is read first when present; variables already set in the
environment take precedence over it.
*/
package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultPort is used when PORT is not set.
	DefaultPort = 3000

	minPort = 1024
	maxPort = 65535
)

// AppConfig contains the settings the server needs at start-up.
type AppConfig struct {
	// Environment is "development" or any other value for production-like behaviour.
	Environment string

	// Port is the TCP port the HTTP and WebSocket listener binds to.
	Port int

	// AllowedOrigins lists the browser origins accepted for CORS and WebSocket upgrades.
	// Ignored in development, where every origin is accepted.
	AllowedOrigins []string
}

// IsDevelopment reports whether the server runs in development mode.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads `.env` (if any) and then parses the configuration from the environment.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	return FromEnv(os.Getenv)
}

// FromEnv parses the configuration using getenv as the variable source.
func FromEnv(getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Environment = getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.Port = DefaultPort
	if portStr := getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
		}
		cfg.Port = port
	}

	if cfg.Port < minPort || cfg.Port > maxPort {
		return nil, fmt.Errorf("port number %d is outside the allowed range (%d-%d)", cfg.Port, minPort, maxPort)
	}

	cfg.AllowedOrigins = []string{}
	for _, origin := range strings.Split(getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	return cfg, nil
}
