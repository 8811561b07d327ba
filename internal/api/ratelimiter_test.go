package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"
)

type staticLimiter struct {
	allow bool
	calls int
}

func (s *staticLimiter) Allow() bool {
	s.calls++
	return s.allow
}

func TestRateLimitMiddlewareBlocksWhenLimiterDenies(t *testing.T) {
	middleware := rateLimitMiddleware(&staticLimiter{allow: false}, zaptest.NewLogger(t), http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler should not execute when rate limited")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/config", nil)
	middleware.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After header, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimitMiddlewarePassesWhenLimiterAllows(t *testing.T) {
	var called bool
	middleware := rateLimitMiddleware(&staticLimiter{allow: true}, zaptest.NewLogger(t), http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/config.js", nil)
	middleware.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to execute when limiter allows")
	}
}

func TestRateLimitMiddlewareExemptsHealth(t *testing.T) {
	limiter := &staticLimiter{allow: false}
	var called bool
	middleware := rateLimitMiddleware(limiter, nil, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	middleware.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, healthPath, nil))

	if !called {
		t.Fatalf("expected health check to bypass the limiter")
	}
	if limiter.calls != 0 {
		t.Fatalf("expected no tokens consumed by health checks, got %d", limiter.calls)
	}
}

func TestNewTokenBucketLimiterUsesDefaults(t *testing.T) {
	limiter := newTokenBucketLimiter(0, 0)
	if limiter == nil {
		t.Fatalf("expected limiter instance")
	}
	if !limiter.Allow() {
		t.Fatalf("expected first request to be allowed")
	}
	if limiter.Allow() {
		t.Fatalf("expected burst of one to deny the second request")
	}
}

func TestTokenBucketRetryAfter(t *testing.T) {
	tests := []struct {
		name string
		rps  float64
		want int
	}{
		{name: "fast bucket rounds up to a second", rps: 25, want: 1},
		{name: "slow bucket waits for next token", rps: 0.25, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTokenBucketLimiter(tt.rps, 1).(*tokenBucket)
			if got := tb.retryAfter(); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
