package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/feral-file/ff-minter/internal/adapter"
)

// Config holds the per-client limits of the relay's pinning routes
type Config struct {
	RequestsPerSecond float64
	Burst             int
	// IdleTTL drops the bucket of a client not seen for this long
	IdleTTL time.Duration
}

// Enabled reports whether requests are limited at all
func (c Config) Enabled() bool {
	return c.RequestsPerSecond > 0
}

// Limiter decides whether a client may make another request
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit_limiter.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Allow consumes one token from the bucket of key and reports whether one was available
	Allow(key string) bool
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiter struct {
	config    Config
	clock     adapter.Clock
	mu        sync.Mutex
	clients   map[string]*clientBucket
	lastSweep time.Time
}

// NewLimiter creates a token-bucket limiter keyed by client
func NewLimiter(cfg Config, clock adapter.Clock) Limiter {
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}

	return &limiter{
		config:    cfg,
		clock:     clock,
		clients:   make(map[string]*clientBucket),
		lastSweep: clock.Now(),
	}
}

func (l *limiter) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	bucket, ok := l.clients[key]
	if !ok {
		bucket = &clientBucket{
			limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst),
		}
		l.clients[key] = bucket
	}
	bucket.lastSeen = now

	return bucket.limiter.AllowN(now, 1)
}

// sweep evicts idle buckets at most once per IdleTTL. Caller holds mu.
func (l *limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.config.IdleTTL {
		return
	}
	for key, bucket := range l.clients {
		if now.Sub(bucket.lastSeen) >= l.config.IdleTTL {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}
