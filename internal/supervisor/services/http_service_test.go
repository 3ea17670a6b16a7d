// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// mockServer blocks in ListenAndServe until Shutdown is called.
type mockServer struct {
	startErr error
	done     chan struct{}
	shutdown atomic.Bool
}

func newMockServer() *mockServer {
	return &mockServer{done: make(chan struct{})}
}

func (m *mockServer) ListenAndServe() error {
	if m.startErr != nil {
		return m.startErr
	}
	<-m.done
	return nil
}

func (m *mockServer) Shutdown(ctx context.Context) error {
	m.shutdown.Store(true)
	close(m.done)
	return nil
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	srv := newMockServer()
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	// Give the serve goroutine a moment to start listening.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	if !srv.shutdown.Load() {
		t.Error("Shutdown was not called")
	}
}

func TestHTTPServerServiceStartFailure(t *testing.T) {
	srv := newMockServer()
	srv.startErr = errors.New("address in use")
	svc := NewHTTPServerService(srv, time.Second)

	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatal("expected start failure to surface")
	}
}

// countingNovelty counts CleanupExpired calls.
type countingNovelty struct {
	calls atomic.Int32
}

func (n *countingNovelty) Seen(string) bool    { return false }
func (n *countingNovelty) MarkServed([]string) {}
func (n *countingNovelty) Close() error        { return nil }
func (n *countingNovelty) CleanupExpired() int {
	n.calls.Add(1)
	return 1
}

func TestNoveltyJanitorSweeps(t *testing.T) {
	nov := &countingNovelty{}
	svc := NewNoveltyJanitorService(nov, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve returned %v, want deadline exceeded", err)
	}
	if nov.calls.Load() == 0 {
		t.Error("janitor never swept the cache")
	}
}
