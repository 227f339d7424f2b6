package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultBaseURL = "https://api.trakt.tv"

// Config holds all application configuration
type Config struct {
	// Trakt
	TraktBaseURL      string
	TraktClientID     string
	TraktClientSecret string
	TraktAccessToken  string
	TraktRefreshToken string
	HTTPTimeout       time.Duration
	RequestsPerSecond float64
	CacheTTL          time.Duration
	ListItemWorkers   int

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string

	// Observability
	TracingEnabled bool
	MetricsFile    string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = v.ReadInConfig()

	return FromViper(v)
}

// FromViper builds the configuration from an already populated viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		TraktBaseURL:      strings.TrimSpace(v.GetString("TRAKT_BASE_URL")),
		TraktClientID:     strings.TrimSpace(v.GetString("TRAKT_CLIENT_ID")),
		TraktClientSecret: strings.TrimSpace(v.GetString("TRAKT_CLIENT_SECRET")),
		TraktAccessToken:  strings.TrimSpace(v.GetString("TRAKT_ACCESS_TOKEN")),
		TraktRefreshToken: strings.TrimSpace(v.GetString("TRAKT_REFRESH_TOKEN")),
		RequestsPerSecond: v.GetFloat64("REQUESTS_PER_SECOND"),
		ListItemWorkers:   v.GetInt("LIST_ITEM_WORKERS"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		LogFile:   v.GetString("LOG_FILE"),

		TracingEnabled: v.GetBool("TRACING_ENABLED"),
		MetricsFile:    v.GetString("METRICS_FILE"),
	}

	timeout := v.GetInt("HTTP_TIMEOUT_SECONDS")
	cacheTTL := v.GetInt("CACHE_TTL_SECONDS")
	if timeout < 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT_SECONDS cannot be negative")
	}
	if cacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL_SECONDS cannot be negative")
	}
	cfg.HTTPTimeout = time.Duration(timeout) * time.Second
	cfg.CacheTTL = time.Duration(cacheTTL) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TRAKT_BASE_URL", defaultBaseURL)
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 30)
	v.SetDefault("REQUESTS_PER_SECOND", 3)
	v.SetDefault("CACHE_TTL_SECONDS", 0)
	v.SetDefault("LIST_ITEM_WORKERS", 1)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("TRACING_ENABLED", false)
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.TraktClientID == "" {
		return fmt.Errorf("TRAKT_CLIENT_ID is required")
	}
	u, err := url.Parse(c.TraktBaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("TRAKT_BASE_URL must be an absolute http(s) URL, got %q", c.TraktBaseURL)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("REQUESTS_PER_SECOND cannot be negative")
	}
	if c.ListItemWorkers < 1 {
		c.ListItemWorkers = 1
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// HasDeviceCredentials reports whether device authorization can be attempted
func (c *Config) HasDeviceCredentials() bool {
	return c.TraktClientID != "" && c.TraktClientSecret != ""
}
