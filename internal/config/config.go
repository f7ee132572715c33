// Package config defines service configuration and its loading.
//
// Conventions:
// - Defaults come from New; Load layers an optional YAML file and env on top.
// - Validation errors wrap ErrInvalidConfig, loading errors wrap ErrLoadConfig.
package config

import (
	"runtime"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`
	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`
	// FederationURL is the base URL of the competitor and leaderboard API.
	FederationURL string `koanf:"federation_url"`
	// AvatarURL is the base URL of the avatar lookup API.
	AvatarURL string `koanf:"avatar_url"`
	// RequestTimeoutMS bounds each outbound federation request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`
	// FetchConcurrency bounds concurrent leaderboard-total lookups per competitor.
	FetchConcurrency int `koanf:"fetch_concurrency"`
	// CORSOrigins is a comma-separated list of allowed browser origins.
	CORSOrigins string `koanf:"cors_origins"`
	// UserAgent is sent with every federation request.
	UserAgent string `koanf:"user_agent"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		FederationURL:    "https://raw.githubusercontent.com/robiningelbrecht/wca-rest-api/master/api",
		AvatarURL:        "https://www.worldcubeassociation.org/api/v0",
		RequestTimeoutMS: 10_000,
		FetchConcurrency: runtime.NumCPU() * 4,
		CORSOrigins:      "http://localhost:3000",
		UserAgent:        "cubestand/1.0",
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Origins splits CORSOrigins into trimmed, non-empty entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
