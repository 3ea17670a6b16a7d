// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML config file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Configuration Categories:
//
//  1. Data Sources:
//     - Sources: Per-museum API settings (Met, AIC, plus key-gated sources)
//
//  2. Search Pipeline:
//     - Search: Term expansion, candidate caps, fetch concurrency
//     - Pipeline: Scoring cutoffs and balancing quotas
//     - Novelty: Optional cross-request result deduplication cache
//
//  3. HTTP Surface:
//     - Server: Listen address, timeouts, environment mode
//     - Security: Rate limiting, CORS
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Search   SearchConfig   `koanf:"search"`
	Pipeline PipelineConfig `koanf:"pipeline"`
	Sources  SourcesConfig  `koanf:"sources"`
	Novelty  NoveltyConfig  `koanf:"novelty"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST: Listen address (default: 0.0.0.0)
//   - HTTP_PORT: Listen port (default: 1889)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
//   - ENVIRONMENT: "development" or "production"
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// SearchConfig controls theme expansion and candidate fetching.
//
// Environment Variables:
//   - SEARCH_EXPANDER: Term expansion strategy, only "static" is available (default: static)
//   - SEARCH_LIMIT: Maximum results per search (default: 20)
//   - SEARCH_MAX_TERMS_PER_SOURCE: Expanded terms queried per source (default: 3)
//   - SEARCH_MAX_CANDIDATES_PER_SOURCE: Candidate IDs fetched per source (default: 100)
//   - SEARCH_WORKERS: Concurrent detail fetches per source (default: 10)
//   - SEARCH_FETCH_TIMEOUT: Deadline for a full source fetch (default: 10s)
type SearchConfig struct {
	Expander               string        `koanf:"expander"`
	Limit                  int           `koanf:"limit"`
	MaxTermsPerSource      int           `koanf:"max_terms_per_source"`
	MaxCandidatesPerSource int           `koanf:"max_candidates_per_source"`
	Workers                int           `koanf:"workers"`
	FetchTimeout           time.Duration `koanf:"fetch_timeout"`
}

// PipelineConfig controls scoring and the balancing quotas applied to the
// merged candidate pool.
//
// ModernCutoff is the first year (inclusive) counted as the modern era.
// Works dated at or after the cutoff are modern; earlier works, and works
// with no parseable year, fall into the historic bucket.
type PipelineConfig struct {
	ModernCutoff int  `koanf:"modern_cutoff"`
	PerSourceCap int  `koanf:"per_source_cap"`
	EraCap       int  `koanf:"era_cap"`
	ReligiousCap int  `koanf:"religious_cap"`
	Shuffle      bool `koanf:"shuffle"`
}

// MuseumConfig holds settings for an open museum API (no key required).
type MuseumConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url"`
}

// KeyedMuseumConfig holds settings for a museum API gated behind an API key.
// The source stays disabled until both Enabled is set and a key is present.
type KeyedMuseumConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
}

// SourcesConfig holds per-museum API settings plus shared outbound
// HTTP client behavior (retries, rate limiting, circuit breaking).
type SourcesConfig struct {
	Met         MuseumConfig      `koanf:"met"`
	AIC         MuseumConfig      `koanf:"aic"`
	Harvard     KeyedMuseumConfig `koanf:"harvard"`
	Rijksmuseum KeyedMuseumConfig `koanf:"rijksmuseum"`

	RequestTimeout     time.Duration `koanf:"request_timeout"`
	RetryAttempts      int           `koanf:"retry_attempts"`
	RetryDelay         time.Duration `koanf:"retry_delay"`
	RateLimitPerSecond float64       `koanf:"rate_limit_per_second"`
	RateLimitBurst     int           `koanf:"rate_limit_burst"`

	BreakerMaxRequests uint32        `koanf:"breaker_max_requests"`
	BreakerInterval    time.Duration `koanf:"breaker_interval"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
	BreakerFailures    uint32        `koanf:"breaker_failures"`
}

// NoveltyConfig controls the optional cross-request novelty cache that
// demotes artworks already served recently, so repeated searches for the
// same theme rotate through the candidate pool.
//
// Backend selects the cache implementation:
//   - "memory": In-process LRU with TTL (default)
//   - "badger": Persistent BadgerDB store, survives restarts (requires Path)
type NoveltyConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Backend  string        `koanf:"backend"`
	Capacity int           `koanf:"capacity"`
	TTL      time.Duration `koanf:"ttl"`
	Path     string        `koanf:"path"`
}

// SecurityConfig holds rate limiting and CORS settings for the HTTP API.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for invalid or inconsistent values.
// Returns an error describing the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	if c.Search.Expander != "static" {
		return fmt.Errorf("search.expander must be static, got %q", c.Search.Expander)
	}
	if c.Search.Limit < 1 || c.Search.Limit > 100 {
		return fmt.Errorf("search.limit must be between 1 and 100, got %d", c.Search.Limit)
	}
	if c.Search.MaxTermsPerSource < 1 {
		return fmt.Errorf("search.max_terms_per_source must be at least 1, got %d", c.Search.MaxTermsPerSource)
	}
	if c.Search.MaxCandidatesPerSource < 1 {
		return fmt.Errorf("search.max_candidates_per_source must be at least 1, got %d", c.Search.MaxCandidatesPerSource)
	}
	if c.Search.Workers < 1 {
		return fmt.Errorf("search.workers must be at least 1, got %d", c.Search.Workers)
	}
	if c.Search.FetchTimeout <= 0 {
		return fmt.Errorf("search.fetch_timeout must be positive, got %s", c.Search.FetchTimeout)
	}

	if c.Pipeline.ModernCutoff < 1000 || c.Pipeline.ModernCutoff > 9999 {
		return fmt.Errorf("pipeline.modern_cutoff must be a four-digit year, got %d", c.Pipeline.ModernCutoff)
	}
	if c.Pipeline.PerSourceCap < 1 {
		return fmt.Errorf("pipeline.per_source_cap must be at least 1, got %d", c.Pipeline.PerSourceCap)
	}
	if c.Pipeline.EraCap < 1 {
		return fmt.Errorf("pipeline.era_cap must be at least 1, got %d", c.Pipeline.EraCap)
	}
	if c.Pipeline.ReligiousCap < 0 {
		return fmt.Errorf("pipeline.religious_cap must not be negative, got %d", c.Pipeline.ReligiousCap)
	}

	if err := c.validateSources(); err != nil {
		return err
	}

	if c.Novelty.Enabled {
		switch c.Novelty.Backend {
		case "memory":
			if c.Novelty.Capacity < 1 {
				return fmt.Errorf("novelty.capacity must be at least 1, got %d", c.Novelty.Capacity)
			}
		case "badger":
			if c.Novelty.Path == "" {
				return fmt.Errorf("novelty.path is required when novelty.backend is badger")
			}
		default:
			return fmt.Errorf("novelty.backend must be memory or badger, got %q", c.Novelty.Backend)
		}
		if c.Novelty.TTL <= 0 {
			return fmt.Errorf("novelty.ttl must be positive, got %s", c.Novelty.TTL)
		}
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	return nil
}

func (c *Config) validateSources() error {
	if !c.Sources.Met.Enabled && !c.Sources.AIC.Enabled &&
		!c.Sources.Harvard.Enabled && !c.Sources.Rijksmuseum.Enabled {
		return fmt.Errorf("at least one artwork source must be enabled")
	}

	// A keyed source enabled without its API key is not an error; the
	// registry skips it with a warning so the remaining sources still run.

	if c.Sources.RequestTimeout <= 0 {
		return fmt.Errorf("sources.request_timeout must be positive, got %s", c.Sources.RequestTimeout)
	}
	if c.Sources.RetryAttempts < 0 {
		return fmt.Errorf("sources.retry_attempts must not be negative, got %d", c.Sources.RetryAttempts)
	}
	if c.Sources.RateLimitPerSecond <= 0 {
		return fmt.Errorf("sources.rate_limit_per_second must be positive, got %f", c.Sources.RateLimitPerSecond)
	}

	return nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c *ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether the server runs in production mode.
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}
