// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package testhelper

import (
	"net/http"
	"os"
	"sync/atomic"
	"testing"
)

// TestOnlineAPIURL is a public JSON endpoint used by the opt-in integration tests
const TestOnlineAPIURL = "https://httpbin.org/json"

// MockRoundTripper replaces the transport of an http.Client in tests
type MockRoundTripper struct {
	Fn func(*http.Request) (*http.Response, error)
}

func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// SpyRoundTripper counts the requests that reach the transport and delegates to Fn.
type SpyRoundTripper struct {
	Fn    func(*http.Request) (*http.Response, error)
	calls atomic.Int64
}

func (s *SpyRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	s.calls.Add(1)
	if s.Fn == nil {
		return nil, http.ErrUseLastResponse
	}
	return s.Fn(req)
}

// Calls returns the number of requests seen by the spy.
func (s *SpyRoundTripper) Calls() int64 {
	return s.calls.Load()
}

// PerformIntegrationTests skips the calling test unless PERFORM_ONLINE_TEST is set.
func PerformIntegrationTests(t *testing.T) {
	t.Helper()
	if os.Getenv("PERFORM_ONLINE_TEST") == "" {
		t.Skip("skipping online test, set PERFORM_ONLINE_TEST to run")
	}
}
