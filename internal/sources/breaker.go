// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package sources

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/logging"
	"github.com/tomtom215/atelier/internal/metrics"
	"github.com/tomtom215/atelier/internal/models"
)

// BreakerSource wraps a Source with a per-source circuit breaker so a
// museum API that starts failing hard stops receiving traffic for a while
// instead of slowing down every search.
//
// DETERMINISM NOTE: The circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. Tests should exercise the
// wrapped source directly rather than racing the breaker clock.
type BreakerSource struct {
	source Source
	cb     *gobreaker.CircuitBreaker[interface{}]
}

// WithBreaker wraps source with a circuit breaker built from configuration.
// Rate-limit errors do not count as breaker failures: a 429 means the
// museum is healthy but throttling us, and opening the circuit on top of
// that would only delay recovery.
func WithBreaker(source Source, cfg *config.SourcesConfig) *BreakerSource {
	name := source.Name()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= cfg.BreakerFailures
			if shouldTrip {
				logging.Warn().
					Str("source", name).
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRateLimited)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().
				Str("source", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerSource{source: source, cb: cb}
}

// Name implements Source.
func (b *BreakerSource) Name() string { return b.source.Name() }

// DisplayName implements Source.
func (b *BreakerSource) DisplayName() string { return b.source.DisplayName() }

// State returns the current breaker state as a string for health reporting.
func (b *BreakerSource) State() string { return stateToString(b.cb.State()) }

// Search implements Source with breaker protection.
func (b *BreakerSource) Search(ctx context.Context, term string) ([]Candidate, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.source.Search(ctx, term)
	})
	if err != nil {
		return nil, err
	}
	candidates, ok := result.([]Candidate)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return candidates, nil
}

// Fetch implements Source with breaker protection. The (nil, nil) "no
// image" outcome passes through unchanged.
func (b *BreakerSource) Fetch(ctx context.Context, c Candidate) (*models.Artwork, error) {
	result, err := b.execute(func() (interface{}, error) {
		art, err := b.source.Fetch(ctx, c)
		if art == nil {
			return nil, err
		}
		return art, err
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	art, ok := result.(*models.Artwork)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return art, nil
}

// execute runs fn through the breaker and keeps the outcome metrics.
// An open circuit surfaces as ErrFetchFailed so the orchestrator skips
// the source for this request without special-casing breaker errors.
func (b *BreakerSource) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.Name(), "rejected").Inc()
			return nil, fmt.Errorf("%w: circuit breaker: %w", ErrFetchFailed, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.Name(), "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.Name(), "success").Inc()
	return result, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
