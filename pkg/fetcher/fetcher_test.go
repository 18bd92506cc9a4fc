package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testPolicy(attempts int) Policy {
	return Policy{MaxAttempts: attempts, Timeout: time.Second, BackoffBase: time.Millisecond}
}

func TestDo_SuccessShortCircuits(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient()
	payload, err := c.Do(context.Background(), Request{URL: srv.URL}, testPolicy(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != `{"ok":true}` {
		t.Fatalf("unexpected payload: %s", payload)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected 1 call, got %d", n)
	}
}

func TestDo_RetryBound(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("model warming up"))
	}))
	defer srv.Close()

	c := NewClient()
	_, err := c.Do(context.Background(), Request{URL: srv.URL}, testPolicy(3))
	if err == nil {
		t.Fatal("expected failure")
	}
	if !IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if !strings.Contains(err.Error(), "model warming up") {
		t.Fatalf("last upstream message not preserved: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("expected exactly maxAttempts=3 calls, got %d", n)
	}
}

func TestDo_TerminalNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad api key"))
	}))
	defer srv.Close()

	c := NewClient()
	_, err := c.Do(context.Background(), Request{URL: srv.URL}, testPolicy(3))
	if err == nil {
		t.Fatal("expected failure")
	}
	if !IsTerminal(err) {
		t.Fatalf("expected terminal error, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", n)
	}
}

func TestDo_CustomRetryableStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway) // 502
	}))
	defer srv.Close()

	// Generation path: only 503 is transient, 502 must be terminal.
	only503 := func(status int) bool { return status == http.StatusServiceUnavailable }

	c := NewClient()
	_, err := c.Do(context.Background(), Request{URL: srv.URL, RetryableStatus: only503}, testPolicy(3))
	if !IsTerminal(err) {
		t.Fatalf("expected terminal error for 502 under custom classifier, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected 1 call, got %d", n)
	}
}

func TestDo_TimeoutIsTransient(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(100 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient()
	policy := Policy{MaxAttempts: 2, Timeout: 10 * time.Millisecond, BackoffBase: time.Millisecond}
	_, err := c.Do(context.Background(), Request{URL: srv.URL}, policy)
	if err == nil {
		t.Fatal("expected timeout failure")
	}
	if !IsTransient(err) {
		t.Fatalf("timeouts must be transient, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 attempts, got %d", n)
	}
}
