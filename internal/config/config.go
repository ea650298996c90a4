// Package config loads client configuration from config/client.yaml with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the shared configuration of the client applications.
type Config struct {
	// APIBaseURL is the REST API root, e.g. http://localhost:8000/api/v1.
	APIBaseURL string `yaml:"api_base_url"`
	// SessionPath is the JSON file the session store persists to.
	SessionPath string `yaml:"session_path"`
	// RequestTimeout bounds every outbound request.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// RateLimit caps outbound requests per second. Zero disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
}

// Load reads config/client.yaml and applies environment overrides.
func Load() (*Config, error) {
	return LoadFromPath(filepath.Join("config", "client.yaml"))
}

// LoadFromPath reads the config file at path, falling back to defaults when
// the file does not exist.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if v := os.Getenv("WHATTOEAT_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("WHATTOEAT_SESSION_PATH"); v != "" {
		cfg.SessionPath = v
	}
	if v := os.Getenv("WHATTOEAT_RATE_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("config: WHATTOEAT_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = limit
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("config: api_base_url is required")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	return cfg, nil
}

// Default returns the development defaults.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		APIBaseURL:     "http://localhost:8000/api/v1",
		SessionPath:    filepath.Join(home, ".whattoeat", "session.json"),
		RequestTimeout: 30 * time.Second,
	}
}
