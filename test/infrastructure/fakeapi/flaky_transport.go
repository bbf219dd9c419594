//go:build integration || unit || test

package fakeapi //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"errors"
	"net"
	"net/http"
	"sync"
)

// FlakyTransport fails the first Failures round trips with a dial error, then
// delegates to Next (http.DefaultTransport when nil).
type FlakyTransport struct {
	Failures int
	Next     http.RoundTripper

	mu    sync.Mutex
	calls int
}

// RoundTrip implements http.RoundTripper.
func (t *FlakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.calls++
	fail := t.calls <= t.Failures
	t.mu.Unlock()

	if fail {
		return nil, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	}

	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(req)
}

// Calls returns how many round trips were attempted.
func (t *FlakyTransport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}
