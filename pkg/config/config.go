// Package config loads newsdesk settings from a YAML file with environment expansion and defaults
package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/newsdesk/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// APIKeyEnv is the environment variable consulted when api.api_key is not set
const APIKeyEnv = "GUARDIAN_API_KEY"

// default values
const (
	DefaultBaseURL   = "https://content.guardianapis.com/search"
	DefaultAPIKey    = "test" // public developer key with low rate limits
	DefaultUserAgent = "Newsdesk/1.0"
	DefaultStoryHost = "www.theguardian.com"
)

// Config holds the application configuration
type Config struct {
	API          APIConfig          `yaml:"api" json:"api" jsonschema:"description=Content API configuration"`
	Search       SearchConfig       `yaml:"search" json:"search" jsonschema:"description=Default search preferences"`
	Server       ServerConfig       `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Connectivity ConnectivityConfig `yaml:"connectivity" json:"connectivity" jsonschema:"description=Network reachability probe"`
	Reader       ReaderConfig       `yaml:"reader" json:"reader" jsonschema:"description=Article reader configuration"`
}

// APIConfig holds the content API endpoint and credentials
type APIConfig struct {
	BaseURL   string `yaml:"base_url" json:"base_url" jsonschema:"default=https://content.guardianapis.com/search,description=Search endpoint URL"`
	APIKey    string `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	UserAgent string `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newsdesk/1.0,description=User agent for API requests"`
}

// SearchConfig holds the default search preferences
type SearchConfig struct {
	Term    string `yaml:"term" json:"term" jsonschema:"description=Search term, empty for all stories"`
	OrderBy string `yaml:"order_by" json:"order_by" jsonschema:"default=newest,enum=newest,enum=oldest,enum=relevance,description=Result ordering"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feeds and external links"`
}

// ConnectivityConfig holds the reachability probe settings
type ConnectivityConfig struct {
	Probe   string        `yaml:"probe" json:"probe" jsonschema:"description=host:port to dial, defaults to the API host"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=3s,description=Probe dial timeout"`
}

// ReaderConfig holds article text extraction settings
type ReaderConfig struct {
	Enabled      bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable article reader"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Page fetch timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for page requests"`
	AllowedHosts []string      `yaml:"allowed_hosts" json:"allowed_hosts" jsonschema:"default=www.theguardian.com,description=Story hosts the server may read articles from"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema validation is supplementary, report and go on
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		log.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// api
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.APIKey == "" {
		cfg.API.APIKey = os.Getenv(APIKeyEnv)
	}
	if cfg.API.APIKey == "" {
		cfg.API.APIKey = DefaultAPIKey
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = DefaultUserAgent
	}

	// search
	if cfg.Search.OrderBy == "" {
		cfg.Search.OrderBy = domain.OrderNewest.String()
	}

	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}

	// connectivity
	if cfg.Connectivity.Timeout == 0 {
		cfg.Connectivity.Timeout = 3 * time.Second
	}

	// reader
	if cfg.Reader.Timeout == 0 {
		cfg.Reader.Timeout = 30 * time.Second
	}
	if len(cfg.Reader.AllowedHosts) == 0 {
		cfg.Reader.AllowedHosts = []string{DefaultStoryHost}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", cfg.API.BaseURL)
	}

	if _, err := domain.ParseOrderBy(cfg.Search.OrderBy); err != nil {
		return fmt.Errorf("search.order_by: %w", err)
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Connectivity.Timeout < 100*time.Millisecond {
		return fmt.Errorf("connectivity timeout must be at least 100ms")
	}

	if cfg.Reader.Enabled && cfg.Reader.Timeout < time.Second {
		return fmt.Errorf("reader timeout must be at least 1 second")
	}

	for _, h := range cfg.Reader.AllowedHosts {
		if strings.TrimSpace(h) == "" || strings.ContainsAny(h, "/:") {
			return fmt.Errorf("reader.allowed_hosts must hold bare host names, got %q", h)
		}
	}

	return nil
}

// Settings returns the default search preferences. The order was checked on load,
// an unknown value falls back to newest.
func (c *Config) Settings() domain.Settings {
	order, err := domain.ParseOrderBy(c.Search.OrderBy)
	if err != nil {
		order = domain.OrderNewest
	}
	return domain.Settings{SearchTerm: c.Search.Term, OrderBy: order}
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetReaderConfig returns article reader configuration
func (c *Config) GetReaderConfig() ReaderConfig {
	return c.Reader
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
