package extractor

import (
	"fmt"
	"time"

	"doc-summarizer/internal/resilience/retry"
	pkgconfig "doc-summarizer/pkg/config"
)

const (
	minBodySize = int64(1024)              // 1KB
	maxBodySize = int64(200 * 1024 * 1024) // 200MB
)

// Config holds the configuration for document extraction.
//
// Security settings:
//   - DenyPrivateIPs: Blocks URLs that resolve to private addresses (SSRF prevention)
//   - MaxBodySize: Caps downloaded pages
//   - MaxFileSize: Caps local files and stdin
//   - MaxRedirects: Caps redirect chains
type Config struct {
	// Timeout is the maximum duration of one HTTP request.
	// Default: 20s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// Enforced while reading, not from the Content-Length header.
	// Default: 10485760 (10MB)
	MaxBodySize int64

	// MaxFileSize is the maximum size of a local file or stdin in bytes.
	// Default: 52428800 (50MB)
	MaxFileSize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is validated like the original URL.
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs rejects URLs resolving to private/loopback/link-local IPs.
	// Default: true
	DenyPrivateIPs bool

	// UserAgent identifies the summarizer to web servers.
	// Default: "DocSummarizerBot/1.0"
	UserAgent string

	// Retry controls retries of transient download failures (5xx, 429, timeouts).
	Retry retry.Config
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:        20 * time.Second,
		MaxBodySize:    10 * 1024 * 1024, // 10MB
		MaxFileSize:    50 * 1024 * 1024, // 50MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "DocSummarizerBot/1.0",
		Retry:          retry.DocumentFetchConfig(),
	}
}

// Validate checks if the configuration values are valid and safe.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxFileSize < minBodySize || c.MaxFileSize > maxBodySize {
		return fmt.Errorf("max file size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxFileSize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	if err := c.Retry.Validate(); err != nil {
		return err
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables, falling back to
// defaults for unset or malformed values, and validates the result.
//
// Environment variables:
//   - EXTRACTOR_TIMEOUT: duration string, e.g. "20s"
//   - EXTRACTOR_MAX_BODY_SIZE: integer in bytes
//   - EXTRACTOR_MAX_FILE_SIZE: integer in bytes
//   - EXTRACTOR_MAX_REDIRECTS: integer
//   - EXTRACTOR_DENY_PRIVATE_IPS: "true" or "false"
//   - EXTRACTOR_USER_AGENT: string
func LoadConfigFromEnv() (Config, error) {
	defaults := DefaultConfig()

	cfg := Config{
		Timeout:        pkgconfig.GetEnvDuration("EXTRACTOR_TIMEOUT", defaults.Timeout),
		MaxBodySize:    int64(pkgconfig.GetEnvInt("EXTRACTOR_MAX_BODY_SIZE", int(defaults.MaxBodySize))),
		MaxFileSize:    int64(pkgconfig.GetEnvInt("EXTRACTOR_MAX_FILE_SIZE", int(defaults.MaxFileSize))),
		MaxRedirects:   pkgconfig.GetEnvInt("EXTRACTOR_MAX_REDIRECTS", defaults.MaxRedirects),
		DenyPrivateIPs: pkgconfig.GetEnvBool("EXTRACTOR_DENY_PRIVATE_IPS", defaults.DenyPrivateIPs),
		UserAgent:      pkgconfig.GetEnvString("EXTRACTOR_USER_AGENT", defaults.UserAgent),
		Retry:          defaults.Retry,
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
