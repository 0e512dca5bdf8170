package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bytechef-api/internal/presentation/http/dto/response"
	"golang.org/x/time/rate"
)

// MsgRateLimited is returned with 429 responses
const MsgRateLimited = "Muitas requisições, tente novamente em instantes"

// IPRateLimiter provides per-client-IP rate limiting
type IPRateLimiter struct {
	limiters    map[string]*rateLimiterEntry
	mu          sync.Mutex
	rate        rate.Limit // requests per second
	burst       int        // maximum burst size
	cleanupTick time.Duration
	entryTTL    time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig holds configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64       // Rate of requests allowed per second
	BurstSize         int           // Maximum burst size
	CleanupInterval   time.Duration // How often to clean up stale entries
	EntryTTL          time.Duration // How long to keep unused entries
}

// DefaultRateLimiterConfig returns sensible defaults
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
}

// RateLimiterConfigFrom converts a requests-per-window budget into a limiter config.
// A non-positive budget falls back to the defaults.
func RateLimiterConfigFrom(requests, windowSeconds int) RateLimiterConfig {
	cfg := DefaultRateLimiterConfig()
	if requests <= 0 || windowSeconds <= 0 {
		return cfg
	}
	cfg.RequestsPerSecond = float64(requests) / float64(windowSeconds)
	cfg.BurstSize = requests
	return cfg
}

// NewIPRateLimiter creates a limiter and starts its cleanup goroutine. Call Stop to end it.
func NewIPRateLimiter(cfg RateLimiterConfig) *IPRateLimiter {
	rl := &IPRateLimiter{
		limiters:    make(map[string]*rateLimiterEntry),
		rate:        rate.Limit(cfg.RequestsPerSecond),
		burst:       cfg.BurstSize,
		cleanupTick: cfg.CleanupInterval,
		entryTTL:    cfg.EntryTTL,
		stop:        make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// getLimiter returns the rate limiter for a client IP, creating it on first use
func (rl *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if entry, exists := rl.limiters[ip]; exists {
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[ip] = &rateLimiterEntry{
		limiter:  limiter,
		lastSeen: time.Now(),
	}

	return limiter
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stop:
			return
		}
	}
}

// cleanup removes entries that haven't been used since now-entryTTL
func (rl *IPRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.entryTTL)
	for ip, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, ip)
		}
	}
}

// Stop ends the cleanup goroutine
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Middleware returns a Gin middleware that applies per-IP rate limiting
func (rl *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getLimiter(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			response.AbortWithError(c, http.StatusTooManyRequests, MsgRateLimited)
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}

// Stats returns current statistics about the rate limiter
func (rl *IPRateLimiter) Stats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"active_clients":      len(rl.limiters),
		"rate_per_second":     float64(rl.rate),
		"burst_size":          rl.burst,
		"cleanup_interval_ms": rl.cleanupTick.Milliseconds(),
		"entry_ttl_ms":        rl.entryTTL.Milliseconds(),
	}
}
