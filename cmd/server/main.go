// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package main is the entry point for the Atelier server.
//
// Atelier aggregates open museum collection APIs (The Met, Art Institute
// of Chicago, Harvard Art Museums, Rijksmuseum) behind a single themed
// search endpoint. A free-text theme is expanded into related search
// terms, each enabled museum is queried concurrently, and the merged
// candidates are scored and balanced into a diverse result set.
//
// Startup order:
//
//  1. Configuration: layered defaults, config.yaml, environment (Koanf v2)
//  2. Logging: zerolog, JSON or console format
//  3. Novelty cache: optional in-memory LRU or BadgerDB backend
//  4. Source registry: enabled museums, each behind a circuit breaker
//  5. Supervisor tree: HTTP server and novelty janitor under suture
//
// Configuration is environment-first; see .env.example. The keyed museums
// (Harvard, Rijksmuseum) stay inactive until both MUSEUM_ENABLED=true and
// an API key are provided.
//
// The server shuts down gracefully on SIGINT and SIGTERM: new connections
// stop, in-flight requests get 10 seconds to finish, then the novelty
// cache is closed.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/atelier/internal/api"
	"github.com/tomtom215/atelier/internal/cache"
	"github.com/tomtom215/atelier/internal/classify"
	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/expand"
	"github.com/tomtom215/atelier/internal/logging"
	"github.com/tomtom215/atelier/internal/search"
	"github.com/tomtom215/atelier/internal/sources"
	"github.com/tomtom215/atelier/internal/supervisor"
	"github.com/tomtom215/atelier/internal/supervisor/services"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("addr", cfg.Server.ListenAddr()).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Atelier")

	// Novelty cache is optional; nil means every search result is fresh.
	novelty, err := cache.New(&cfg.Novelty)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize novelty cache")
	}
	if novelty != nil {
		defer func() {
			if err := novelty.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing novelty cache")
			}
		}()
		logging.Info().
			Str("backend", cfg.Novelty.Backend).
			Dur("ttl", cfg.Novelty.TTL).
			Msg("Novelty cache enabled")
	}

	registry := sources.NewRegistry(&cfg.Sources)
	if registry.Len() == 0 {
		logging.Fatal().Msg("No artwork sources are enabled")
	}

	srcs := make([]sources.Source, 0, registry.Len())
	for _, s := range registry.Sources() {
		srcs = append(srcs, s)
	}

	searcher := search.NewSearcher(
		&cfg.Search,
		&cfg.Pipeline,
		srcs,
		expand.NewStaticExpander(),
		classify.New(cfg.Pipeline.ModernCutoff),
		novelty,
	)

	handler := api.NewHandler(cfg, searcher, registry, novelty)
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})

	server := &http.Server{
		Addr:              cfg.Server.ListenAddr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Supervisor events are logged through the zerolog-backed slog adapter.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if novelty != nil {
		tree.AddMaintenanceService(services.NewNoveltyJanitorService(novelty, 0))
		logging.Info().Msg("Novelty janitor service added")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
