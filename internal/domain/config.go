package domain

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Server modes. Mock and hybrid bind every capability to its mock
// implementation; production binds a capability to its live implementation
// only when the matching credential is present.
const (
	ModeMock       = "mock"
	ModeProduction = "production"
	ModeHybrid     = "hybrid"
)

// Config represents the server configuration. Values come from an optional
// YAML file with environment variables taking precedence, so a bare
// environment-only deployment works without any file at all.
type Config struct {
	Mode              string          `yaml:"mode"`
	BraveAPIKey       string          `yaml:"brave_api_key"`
	OpenWeatherAPIKey string          `yaml:"openweather_api_key"`
	MaxConcurrent     int             `yaml:"max_concurrent"`
	TimeoutMS         int             `yaml:"timeout_ms"`
	Transport         TransportConfig `yaml:"transport"`
}

// TransportConfig defines transport settings.
type TransportConfig struct {
	Type string     `yaml:"type"` // "stdio" or "http"
	HTTP HTTPConfig `yaml:"http,omitempty"`
}

// HTTPConfig defines HTTP transport settings. Only used when transport type
// is "http".
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DefaultConfig returns the configuration used when neither file nor
// environment provides a value.
func DefaultConfig() *Config {
	return &Config{
		Mode:          ModeMock,
		MaxConcurrent: 10,
		TimeoutMS:     30000,
		Transport: TransportConfig{
			Type: "stdio",
			HTTP: HTTPConfig{Host: "127.0.0.1", Port: 8831},
		},
	}
}

// LoadConfig builds the configuration: defaults, then the YAML file at path
// (if path is non-empty and the file exists), then environment overrides.
// Returns an error if the file is unreadable, has invalid syntax, or the
// merged configuration fails validation.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Environment-only deployment; nothing to merge.
		case err != nil:
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("invalid YAML syntax in configuration file: %w", err)
			}
		}
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyEnv overrides configuration fields from environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("INSIGHT_MODE"); v != "" {
		c.Mode = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("BRAVE_API_KEY"); v != "" {
		c.BraveAPIKey = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		c.OpenWeatherAPIKey = v
	}
	if v := os.Getenv("INSIGHT_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrent = n
		}
	}
	if v := os.Getenv("INSIGHT_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TimeoutMS = n
		}
	}
	if v := os.Getenv("INSIGHT_TRANSPORT"); v != "" {
		c.Transport.Type = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("INSIGHT_HTTP_HOST"); v != "" {
		c.Transport.HTTP.Host = v
	}
	if v := os.Getenv("INSIGHT_HTTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Transport.HTTP.Port = n
		}
	}
}

// Validate checks the configuration for completeness and correctness.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errors []string

	switch c.Mode {
	case ModeMock, ModeProduction, ModeHybrid:
	case "":
		errors = append(errors, "mode is required")
	default:
		errors = append(errors, fmt.Sprintf("invalid mode '%s': must be 'mock', 'production' or 'hybrid'", c.Mode))
	}

	if c.MaxConcurrent <= 0 {
		errors = append(errors, fmt.Sprintf("max_concurrent must be positive, got %d", c.MaxConcurrent))
	}
	if c.TimeoutMS <= 0 {
		errors = append(errors, fmt.Sprintf("timeout_ms must be positive, got %d", c.TimeoutMS))
	}

	switch c.Transport.Type {
	case "stdio":
	case "http":
		if c.Transport.HTTP.Host == "" {
			errors = append(errors, "HTTP host is required when transport type is 'http'")
		}
		if c.Transport.HTTP.Port <= 0 || c.Transport.HTTP.Port > 65535 {
			errors = append(errors, fmt.Sprintf("invalid HTTP port %d: must be between 1 and 65535", c.Transport.HTTP.Port))
		}
	case "":
		errors = append(errors, "transport type is required")
	default:
		errors = append(errors, fmt.Sprintf("invalid transport type '%s': must be 'stdio' or 'http'", c.Transport.Type))
	}

	if len(errors) > 0 {
		return &Error{
			Code:    ConfigurationError,
			Message: fmt.Sprintf("validation errors: %s", strings.Join(errors, "; ")),
		}
	}

	return nil
}

// Timeout returns the per-call timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
