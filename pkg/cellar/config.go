// Package cellar provides a client for the Publications Office Cellar
// repository: SPARQL-result id extraction, rate-limited document fetching
// with content caching, and zip-aware downloading to disk.
package cellar

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the Cellar resource endpoint.
const DefaultBaseURL = "http://publications.europa.eu/resource/cellar/"

// DefaultUserAgent is the default User-Agent header sent with requests.
const DefaultUserAgent = "op-cellar/1.0"

// DefaultAccept is the accept profile requesting the Formex, XHTML and
// plain renditions of a Cellar resource.
const DefaultAccept = "application/zip, application/zip;mtype=fmx4, application/xml;mtype=fmx4, application/xhtml+xml, text/html, text/html;type=simplified, application/msword, text/plain, application/xml;notice=object"

// DefaultRequestInterval is the default minimum interval between requests.
const DefaultRequestInterval = 1 * time.Second

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultCacheTTL is the default time-to-live for cached payloads.
const DefaultCacheTTL = 1 * time.Hour

// Config holds configuration for a Client.
type Config struct {
	// BaseURL is the Cellar resource endpoint.
	BaseURL string

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// Accept is the accept profile sent with fetch requests.
	Accept string

	// RateLimit is the minimum interval between HTTP requests.
	RateLimit time.Duration

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// CacheTTL is the time-to-live for cached payloads.
	CacheTTL time.Duration

	// HTTPClient is the underlying HTTP client. If nil, a client with
	// the configured timeout is used, wrapped with rate limiting.
	HTTPClient HTTPClient
}

// fileConfig is the on-disk YAML shape of Config. Durations are strings
// in Go duration syntax ("1s", "500ms").
type fileConfig struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
	Accept    string `yaml:"accept"`
	RateLimit string `yaml:"rate_limit"`
	Timeout   string `yaml:"timeout"`
	CacheTTL  string `yaml:"cache_ttl"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
		Accept:    DefaultAccept,
		RateLimit: DefaultRequestInterval,
		Timeout:   DefaultTimeout,
		CacheTTL:  DefaultCacheTTL,
	}
}

// LoadConfig reads a YAML config file and applies it over the defaults.
// Unset fields keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if file.BaseURL != "" {
		config.BaseURL = file.BaseURL
	}
	if file.UserAgent != "" {
		config.UserAgent = file.UserAgent
	}
	if file.Accept != "" {
		config.Accept = file.Accept
	}
	if file.RateLimit != "" {
		config.RateLimit, err = time.ParseDuration(file.RateLimit)
		if err != nil {
			return config, fmt.Errorf("invalid rate_limit in %s: %w", path, err)
		}
	}
	if file.Timeout != "" {
		config.Timeout, err = time.ParseDuration(file.Timeout)
		if err != nil {
			return config, fmt.Errorf("invalid timeout in %s: %w", path, err)
		}
	}
	if file.CacheTTL != "" {
		config.CacheTTL, err = time.ParseDuration(file.CacheTTL)
		if err != nil {
			return config, fmt.Errorf("invalid cache_ttl in %s: %w", path, err)
		}
	}
	return config, nil
}
