// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the agent configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults, environment
// variables, or must be provided via CLI flags.
type Config struct {
	// Connections
	DatabaseURL       string `json:"database_url,omitempty"`       // PostgreSQL connection URL
	APIKey            string `json:"api_key,omitempty"`            // Gemini API key
	GoogleCredentials string `json:"google_credentials,omitempty"` // Path to Google service account JSON

	// Notification
	SenderAddress string `json:"sender_address,omitempty"` // From address for notification mails

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Ingestion
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds,omitempty"` // Per-request timeout for sample fetching

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Environment variable names recognized by FromEnv.
const (
	EnvDatabaseURL       = "DATABASE_URL"
	EnvAPIKey            = "GEMINI_API_KEY"
	EnvGoogleCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvSenderAddress     = "NOTIFICATION_SENDER"
	EnvPort              = "PORT"
)

// DefaultPort is used when neither the config file, the environment, nor a
// flag sets one.
const DefaultPort = 8080

// DefaultFetchTimeoutSeconds bounds a single sample-text fetch.
const DefaultFetchTimeoutSeconds = 20

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from the process environment. Values
// set in a config file or via flags take precedence when merged.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL:       os.Getenv(EnvDatabaseURL),
		APIKey:            os.Getenv(EnvAPIKey),
		GoogleCredentials: os.Getenv(EnvGoogleCredentials),
		SenderAddress:     os.Getenv(EnvSenderAddress),
	}
	if p := os.Getenv(EnvPort); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			cfg.Port = port
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in 0-65535")
	}
	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_seconds' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.GoogleCredentials != "" {
		if _, err := os.Stat(c.GoogleCredentials); os.IsNotExist(err) {
			return fmt.Errorf("config error: google credentials file not found: %s", c.GoogleCredentials)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to layer config file values over environment
// values, and CLI flags over both.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.GoogleCredentials == "" {
		result.GoogleCredentials = defaults.GoogleCredentials
	}
	if result.SenderAddress == "" {
		result.SenderAddress = defaults.SenderAddress
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}
	if result.FetchTimeoutSeconds == 0 {
		if defaults.FetchTimeoutSeconds > 0 {
			result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
		} else {
			result.FetchTimeoutSeconds = DefaultFetchTimeoutSeconds
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
