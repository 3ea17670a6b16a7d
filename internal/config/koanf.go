// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/atelier/config.yaml",
	"/etc/atelier/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        1889,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Search: SearchConfig{
			Expander:               "static",
			Limit:                  20,
			MaxTermsPerSource:      3,
			MaxCandidatesPerSource: 100,
			Workers:                10,
			FetchTimeout:           10 * time.Second,
		},
		Pipeline: PipelineConfig{
			ModernCutoff: 1923,
			PerSourceCap: 10,
			EraCap:       10,
			ReligiousCap: 2,
			Shuffle:      true,
		},
		Sources: SourcesConfig{
			Met: MuseumConfig{
				Enabled: true,
				BaseURL: "https://collectionapi.metmuseum.org/public/collection/v1",
			},
			AIC: MuseumConfig{
				Enabled: true,
				BaseURL: "https://api.artic.edu/api/v1",
			},
			// Key-gated sources stay off until a key is configured.
			Harvard: KeyedMuseumConfig{
				Enabled: false,
				BaseURL: "https://api.harvardartmuseums.org",
				APIKey:  "",
			},
			Rijksmuseum: KeyedMuseumConfig{
				Enabled: false,
				BaseURL: "https://www.rijksmuseum.nl/api/en",
				APIKey:  "",
			},
			RequestTimeout:     15 * time.Second,
			RetryAttempts:      3,
			RetryDelay:         500 * time.Millisecond,
			RateLimitPerSecond: 10.0,
			RateLimitBurst:     20,
			BreakerMaxRequests: 3,
			BreakerInterval:    60 * time.Second,
			BreakerTimeout:     30 * time.Second,
			BreakerFailures:    5,
		},
		Novelty: NoveltyConfig{
			Enabled:  false, // Disabled by default - opt-in only
			Backend:  "memory",
			Capacity: 10000,
			TTL:      24 * time.Hour,
			Path:     "/data/novelty",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// A .env file in the working directory is loaded into the process
// environment first, so local development keys never need exporting.
func LoadWithKoanf() (*Config, error) {
	// Optional .env file for local development; missing file is fine.
	_ = godotenv.Load()

	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// HTTP_PORT -> server.port
	// AIC_BASE_URL -> sources.aic.base_url
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - SEARCH_LIMIT -> search.limit
//   - MET_ENABLED -> sources.met.enabled
//   - HARVARD_API_KEY -> sources.harvard.api_key
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Search mappings
		"search_expander":                  "search.expander",
		"search_limit":                     "search.limit",
		"search_max_terms_per_source":      "search.max_terms_per_source",
		"search_max_candidates_per_source": "search.max_candidates_per_source",
		"search_workers":                   "search.workers",
		"search_fetch_timeout":             "search.fetch_timeout",

		// Pipeline mappings
		"pipeline_modern_cutoff": "pipeline.modern_cutoff",
		"pipeline_source_cap":    "pipeline.per_source_cap",
		"pipeline_era_cap":       "pipeline.era_cap",
		"pipeline_religious_cap": "pipeline.religious_cap",
		"pipeline_shuffle":       "pipeline.shuffle",

		// Source mappings
		"met_enabled":          "sources.met.enabled",
		"met_base_url":         "sources.met.base_url",
		"aic_enabled":          "sources.aic.enabled",
		"aic_base_url":         "sources.aic.base_url",
		"harvard_enabled":      "sources.harvard.enabled",
		"harvard_base_url":     "sources.harvard.base_url",
		"harvard_api_key":      "sources.harvard.api_key",
		"rijksmuseum_enabled":  "sources.rijksmuseum.enabled",
		"rijksmuseum_base_url": "sources.rijksmuseum.base_url",
		"rijksmuseum_api_key":  "sources.rijksmuseum.api_key",

		// Shared outbound client mappings
		"source_request_timeout":    "sources.request_timeout",
		"source_retry_attempts":     "sources.retry_attempts",
		"source_retry_delay":        "sources.retry_delay",
		"source_rate_limit":         "sources.rate_limit_per_second",
		"source_rate_limit_burst":   "sources.rate_limit_burst",
		"breaker_max_requests":      "sources.breaker_max_requests",
		"breaker_interval":          "sources.breaker_interval",
		"breaker_timeout":           "sources.breaker_timeout",
		"breaker_failure_threshold": "sources.breaker_failures",

		// Novelty cache mappings
		"novelty_enabled":  "novelty.enabled",
		"novelty_backend":  "novelty.backend",
		"novelty_capacity": "novelty.capacity",
		"novelty_ttl":      "novelty.ttl",
		"novelty_path":     "novelty.path",

		// Security mappings
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",
		"trusted_proxies":     "security.trusted_proxies",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
