package auth

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/galeragate-ledger/internal/config"
)

// Decision is the outcome of one attempt against a Limiter.
type Decision struct {
	Allowed    bool
	Remaining  int           // attempts left after this one
	RetryAfter time.Duration // set when Allowed is false
}

// Limiter is a token bucket keyed by identity.  Allow consumes one token;
// Reset refills the bucket, which callers do after a successful login.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Reset(ctx context.Context, key string) error
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// MemoryLimiter keeps buckets in process memory.  It is the fallback when
// no Redis server is configured.
type MemoryLimiter struct {
	cfg     config.LoginLimitConfig
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*bucket
}

func NewMemoryLimiter(cfg config.LoginLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{cfg: cfg, now: time.Now, buckets: make(map[string]*bucket)}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.cfg.Capacity, lastRefill: now}
		l.buckets[key] = b
	}

	if interval := l.cfg.RefillInterval; interval > 0 {
		if n := int(now.Sub(b.lastRefill) / interval); n > 0 {
			b.tokens = min(l.cfg.Capacity, b.tokens+n)
			b.lastRefill = b.lastRefill.Add(time.Duration(n) * interval)
		}
	}

	if b.tokens > 0 {
		b.tokens--
		return Decision{Allowed: true, Remaining: b.tokens}, nil
	}
	wait := l.cfg.RefillInterval - now.Sub(b.lastRefill)
	if wait < 0 {
		wait = 0
	}
	return Decision{Allowed: false, RetryAfter: wait}, nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
	return nil
}
