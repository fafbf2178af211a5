package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/termcastio/termcast-server/pkg/config"
)

// RateLimiter manages per-client token buckets for the web API.
type RateLimiter struct {
	config config.RateLimitConfig
	logger *zap.Logger

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	cleanupInterval time.Duration
	lastCleanup     time.Time
}

// clientLimiter tracks rate limiting state for a single client IP.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter for the web API.
func NewRateLimiter(cfg config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		config:          cfg,
		logger:          logger.Named("ratelimit"),
		limiters:        make(map[string]*clientLimiter),
		cleanupInterval: 10 * time.Minute,
		lastCleanup:     time.Now(),
	}
}

// getLimiter returns the limiter for an identifier, creating it if needed.
func (r *RateLimiter) getLimiter(identifier string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Cleanup old limiters periodically
	if time.Since(r.lastCleanup) > r.cleanupInterval {
		r.cleanup()
	}

	cl, exists := r.limiters[identifier]
	if exists {
		cl.lastSeen = time.Now()
		return cl.limiter
	}

	burst := r.config.Burst
	if burst < 1 {
		burst = 1
	}
	cl = &clientLimiter{
		limiter:  rate.NewLimiter(rate.Limit(r.config.RequestsPerSecond), burst),
		lastSeen: time.Now(),
	}
	r.limiters[identifier] = cl

	return cl.limiter
}

// cleanup removes limiters that have not been used recently.
// Caller must hold r.mu.
func (r *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-30 * time.Minute)
	for key, cl := range r.limiters {
		if cl.lastSeen.Before(cutoff) {
			delete(r.limiters, key)
		}
	}
	r.lastCleanup = time.Now()
}

// Allow reports whether a request from the given identifier may proceed.
func (r *RateLimiter) Allow(identifier string) bool {
	if !r.config.Enabled {
		return true
	}
	return r.getLimiter(identifier).Allow()
}

// RateLimit returns a gin middleware enforcing the per-client limit.
// Clients are identified by IP.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.config.Enabled {
			c.Next()
			return
		}

		identifier := c.ClientIP()
		if identifier == "" {
			identifier = "_unknown"
		}

		if !rl.Allow(identifier) {
			rl.logger.Warn("Rate limit exceeded",
				zap.String("client", identifier),
				zap.String("path", c.Request.URL.Path),
			)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
