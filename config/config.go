/*
Package config loads server configuration from the environment.

PURPOSE:
  One place for every runtime knob. Values come from environment
  variables with sensible defaults; a .env file in the working directory
  is loaded first when present, so local development needs no exported
  shell state.

PRECEDENCE:
  command-line flags (cmd/server) > environment variables > .env > defaults

VARIABLES:
  PORT               HTTP server port            (default 8080)
  DB_PATH            SQLite database path        (default workforce.db)
  CORS_ORIGINS       Comma-separated origins     (default localhost dev ports)
  SHUTDOWN_TIMEOUT   Graceful shutdown window    (default 30s)
*/
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the resolved server configuration.
type Config struct {
	Port            int
	DBPath          string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// Load reads the configuration from the environment, after loading a .env
// file if one exists in the working directory.
func Load() Config {
	// Missing .env is the normal production case, not an error.
	_ = godotenv.Load()

	return Config{
		Port:            envInt("PORT", 8080),
		DBPath:          envString("DB_PATH", "workforce.db"),
		CORSOrigins:     envList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
