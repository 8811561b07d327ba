package api

import (
	"math"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultRatePerSecond = 25.0
	defaultBurst         = 50
	healthPath           = "/api/health"
)

type rateLimiter interface {
	Allow() bool
}

// tokenBucket throttles config builds. Every rendered config runs through
// esbuild, so a burst of builds is the costly case.
type tokenBucket struct {
	limiter *rate.Limiter
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &tokenBucket{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (b *tokenBucket) Allow() bool {
	if b == nil || b.limiter == nil {
		return true
	}
	return b.limiter.Allow()
}

// retryAfter is the whole number of seconds until the next token.
func (b *tokenBucket) retryAfter() int {
	if b == nil || b.limiter == nil || b.limiter.Limit() <= 0 {
		return 1
	}
	return int(math.Max(1, math.Ceil(1/float64(b.limiter.Limit()))))
}

// rateLimitMiddleware rejects requests the limiter denies. Health checks are
// never throttled so probes keep working while builds are being shed.
func rateLimitMiddleware(limiter rateLimiter, logger *zap.Logger, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == healthPath || limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}

		retry := 1
		if tb, ok := limiter.(*tokenBucket); ok {
			retry = tb.retryAfter()
		}
		logger.Debug("request throttled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestIDFromContext(r.Context())),
		)
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		writeError(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded, please retry shortly")
	})
}
