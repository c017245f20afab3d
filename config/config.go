package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	CampusAPIURL    string        // Campus backend base URL
	Port            string        // Hub listen port
	SessionFile     string        // Persisted session record path ("" = default under home)
	CSRFSecret      string        // Secret for CSRF token generation
	ShellAuthSecret string        // Shared secret between UI shell and hub
	RequestTimeout  time.Duration // Backend HTTP client timeout
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		CampusAPIURL:    getEnv("CAMPUS_API_URL", "http://localhost:8000"),
		Port:            getEnv("PORT", "8787"),
		SessionFile:     getEnv("SESSION_FILE", ""),
		CSRFSecret:      getEnv("CSRF_SECRET", ""),
		ShellAuthSecret: getEnv("SHELL_AUTH_SECRET", ""),
		RequestTimeout:  10 * time.Second, // Default 10 seconds
	}

	// Parse REQUEST_TIMEOUT if provided
	if timeoutStr := os.Getenv("REQUEST_TIMEOUT"); timeoutStr != "" {
		duration, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT format: %w", err)
		}
		config.RequestTimeout = duration
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.CampusAPIURL == "" {
		return fmt.Errorf("CAMPUS_API_URL cannot be empty")
	}

	if strings.HasSuffix(c.CampusAPIURL, "/") {
		return fmt.Errorf("CAMPUS_API_URL must not end with a slash")
	}

	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
