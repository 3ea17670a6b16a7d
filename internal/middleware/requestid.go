// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package middleware provides HTTP middleware shared across the router:
// request ID propagation and Prometheus request instrumentation.
package middleware

import (
	"net/http"

	"github.com/tomtom215/atelier/internal/logging"
)

// RequestID assigns each request a unique ID, honoring one supplied by an
// upstream proxy. The ID goes into the response header and into the
// logging context so every log line for the request carries it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
