// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied when neither the config file, environment, nor flags
// provide a value.
const (
	DefaultAPIURL       = "http://localhost:8000"
	DefaultHTTPTimeout  = 60 * time.Second
	DefaultAdvanceDelay = 2 * time.Second
)

// Environment variable names recognized as fallbacks for config values.
const (
	EnvAPIURL    = "RESUME_PILOT_API_URL"
	EnvStatePath = "RESUME_PILOT_STATE"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// APIURL is the base URL of the resume backend service.
	APIURL string `json:"api_url,omitempty"`

	// StatePath is the path of the local session state file.
	StatePath string `json:"state_path,omitempty"`

	// HTTPTimeoutSec is the per-request timeout for backend calls, in seconds.
	HTTPTimeoutSec int `json:"http_timeout_sec,omitempty"`

	// AdvanceDelaySec is how long the chat stage waits after the interview
	// completes before moving on, in seconds. Gives the user time to read
	// the final assistant message.
	AdvanceDelaySec int `json:"advance_delay_sec,omitempty"`

	// UseBrowser enables headless-browser rendering when a job posting URL
	// yields too little text over plain HTTP (requires Chrome).
	UseBrowser bool `json:"use_browser,omitempty"`

	// Verbose prints detailed debug information.
	Verbose bool `json:"verbose,omitempty"`
}

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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.APIURL != "" {
		parsed, err := url.Parse(c.APIURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config error: 'api_url' is not a valid URL: %s", c.APIURL)
		}
	}

	if c.HTTPTimeoutSec < 0 {
		return fmt.Errorf("config error: 'http_timeout_sec' must be non-negative")
	}
	if c.AdvanceDelaySec < 0 {
		return fmt.Errorf("config error: 'advance_delay_sec' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// environment variables, then from built-in defaults. CLI flags are applied
// by the caller before this and always win.
func (c *Config) MergeWithDefaults() Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = os.Getenv(EnvAPIURL)
	}
	if result.APIURL == "" {
		result.APIURL = DefaultAPIURL
	}

	if result.StatePath == "" {
		result.StatePath = os.Getenv(EnvStatePath)
	}
	if result.StatePath == "" {
		result.StatePath = DefaultStatePath()
	}

	if result.HTTPTimeoutSec == 0 {
		result.HTTPTimeoutSec = int(DefaultHTTPTimeout / time.Second)
	}
	if result.AdvanceDelaySec == 0 {
		result.AdvanceDelaySec = int(DefaultAdvanceDelay / time.Second)
	}

	return result
}

// HTTPTimeout returns the backend request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}

// AdvanceDelay returns the post-completion chat delay as a duration.
func (c *Config) AdvanceDelay() time.Duration {
	return time.Duration(c.AdvanceDelaySec) * time.Second
}

// DefaultStatePath returns the default location of the session state file,
// under the user config directory when available.
func DefaultStatePath() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "resume-pilot", "state.db")
	}
	return filepath.Join(".", ".resume-pilot", "state.db")
}
