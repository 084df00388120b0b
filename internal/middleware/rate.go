package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
	// IdleTTL is how long a client's limiter survives without requests.
	// Zero keeps limiters forever.
	IdleTTL time.Duration
}

// DefaultRateLimitConfig returns the per-client limit used by the server.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		Burst:             200,
		IdleTTL:           10 * time.Minute,
	}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiters keys a token bucket per client address.
type limiters struct {
	cfg     RateLimitConfig
	mu      sync.Mutex
	clients map[string]*client
	swept   time.Time
	now     func() time.Time
}

func newLimiters(cfg RateLimitConfig) *limiters {
	return &limiters{
		cfg:     cfg,
		clients: make(map[string]*client),
		now:     time.Now,
	}
}

func (l *limiters) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter
}

// sweep drops idle clients, at most once per IdleTTL.
func (l *limiters) sweep(now time.Time) {
	if l.cfg.IdleTTL <= 0 || now.Sub(l.swept) < l.cfg.IdleTTL {
		return
	}
	l.swept = now
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.cfg.IdleTTL {
			delete(l.clients, key)
		}
	}
}

func (l *limiters) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimit creates a per-IP rate limiting middleware.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	store := newLimiters(cfg)
	return func(c *gin.Context) {
		limit(c, cfg, store.get(c.ClientIP()))
	}
}

// GlobalRateLimit creates a global rate limiting middleware.
func GlobalRateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	return func(c *gin.Context) {
		limit(c, cfg, limiter)
	}
}

func limit(c *gin.Context, cfg RateLimitConfig, limiter *rate.Limiter) {
	if limiter.Allow() {
		c.Next()
		return
	}

	if cfg.RequestsPerSecond > 0 {
		wait := math.Ceil(1 / float64(cfg.RequestsPerSecond))
		c.Header("Retry-After", strconv.Itoa(int(wait)))
	}
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error": "rate limit exceeded",
	})
}
