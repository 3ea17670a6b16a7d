// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/metrics"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
// This prevents unbounded memory allocation when reading large error responses
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder message if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// apiClient is the shared HTTP layer under every museum source. It applies
// a client-side rate limit before each call, retries HTTP 429 with
// exponential backoff honoring Retry-After, and decodes JSON responses.
//
// Thread Safety: safe for concurrent use; the limiter serializes bursts.
type apiClient struct {
	source         string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// newAPIClient builds the shared outbound client for one source from the
// configured timeouts and limits.
func newAPIClient(source string, cfg *config.SourcesConfig) *apiClient {
	return &apiClient{
		source: source,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
		maxRetries:     cfg.RetryAttempts,
		retryBaseDelay: cfg.RetryDelay,
	}
}

// doRequestWithRateLimit performs a GET with automatic HTTP 429 handling.
// Backoff doubles per attempt; a Retry-After header overrides the computed
// delay. When retries are exhausted the call fails with ErrRateLimited so
// the orchestrator benches the source for the rest of the request.
func (c *apiClient) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: limiter wait: %w", ErrFetchFailed, err)
	}

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetchFailed, ctx.Err())
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create request: %w", ErrFetchFailed, err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Rate limited - close body and retry with backoff
		_ = resp.Body.Close()

		if attempt == c.maxRetries {
			break
		}

		// Exponential backoff: base, 2x, 4x, ...
		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))

		// Retry-After header (RFC 6585) wins over computed backoff
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrFetchFailed, ctx.Err())
		}
	}

	metrics.SourceRateLimited.WithLabelValues(c.source).Inc()
	return nil, fmt.Errorf("%w: HTTP 429 after %d retries", ErrRateLimited, c.maxRetries)
}

// getJSON performs a GET and decodes the 2xx JSON body into result.
// Non-2xx statuses and malformed JSON both surface as ErrFetchFailed;
// operation names the logical call for metrics and error messages.
func (c *apiClient) getJSON(ctx context.Context, operation, reqURL string, result interface{}) error {
	start := time.Now()
	err := c.getJSONInner(ctx, reqURL, result)
	metrics.SourceRequestDuration.WithLabelValues(c.source, operation).Observe(time.Since(start).Seconds())

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	metrics.SourceRequestsTotal.WithLabelValues(c.source, operation, outcome).Inc()

	if err != nil {
		return fmt.Errorf("%s %s: %w", c.source, operation, err)
	}
	return nil
}

func (c *apiClient) getJSONInner(ctx context.Context, reqURL string, result interface{}) error {
	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyForError(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrFetchFailed, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrFetchFailed, err)
	}
	return nil
}
