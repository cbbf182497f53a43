package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket holds the state for one key. Callers hold Limiter.mu.
type tokenBucket struct {
	tokens   float64
	lastSeen time.Time
}

// Limiter is a set of token buckets keyed by client
type Limiter struct {
	capacity   float64
	perMinute  float64
	refillRate float64 // tokens per second
	ttl        time.Duration

	mu        sync.Mutex
	buckets   map[string]*tokenBucket
	lastSweep time.Time
	now       func() time.Time
}

type Option func(*Limiter)

// WithTTL sets how long an idle bucket is kept. Zero keeps buckets forever.
func WithTTL(ttl time.Duration) Option {
	return func(l *Limiter) {
		l.ttl = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// NewLimiter allows a burst of capacity requests per key, refilled at perMinute
func NewLimiter(capacity int, perMinute float64, opts ...Option) *Limiter {
	l := &Limiter{
		capacity:   float64(capacity),
		perMinute:  perMinute,
		refillRate: perMinute / 60,
		ttl:        time.Hour,
		buckets:    make(map[string]*tokenBucket),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()
	return l
}

// Allow takes one token from key's bucket
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &tokenBucket{tokens: l.capacity, lastSeen: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.lastSeen).Seconds()
	b.tokens = min(l.capacity, b.tokens+elapsed*l.refillRate)
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Reset forgets key
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// Len returns the number of tracked keys
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops idle buckets at most once per ttl
func (l *Limiter) sweep(now time.Time) {
	if l.ttl <= 0 || now.Sub(l.lastSweep) < l.ttl {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.ttl {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
