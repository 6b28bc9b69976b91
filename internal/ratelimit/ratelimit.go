package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a per-identifier fixed-window rate limiter with a block
// penalty: exceeding the window's budget rejects the request and blocks the
// identifier outright, and the block holds even after the window rolls over.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	max      int
	window   time.Duration
	blockFor time.Duration

	now func() time.Time
}

type entry struct {
	count        int
	windowStart  time.Time
	blockedUntil time.Time
}

// Decision is the outcome of one Allow call. RetryAfter is non-zero only on
// rejection and names the remaining block time.
type Decision struct {
	OK         bool
	RetryAfter time.Duration
}

// New creates a Limiter allowing max requests per window, blocking
// violators for blockFor.
func New(max int, window, blockFor time.Duration) *Limiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if blockFor <= 0 {
		blockFor = window
	}
	return &Limiter{
		entries:  make(map[string]*entry),
		max:      max,
		window:   window,
		blockFor: blockFor,
		now:      time.Now,
	}
}

// Allow records one request for the identifier and reports whether it may
// proceed.
func (l *Limiter) Allow(id string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, exists := l.entries[id]
	if !exists {
		v = &entry{windowStart: now}
		l.entries[id] = v
	}

	if v.blockedUntil.After(now) {
		return Decision{OK: false, RetryAfter: v.blockedUntil.Sub(now)}
	}

	if now.Sub(v.windowStart) > l.window {
		v.count = 0
		v.windowStart = now
	}

	v.count++
	if v.count > l.max {
		v.blockedUntil = now.Add(l.blockFor)
		return Decision{OK: false, RetryAfter: l.blockFor}
	}

	return Decision{OK: true}
}

// Sweep evicts identifiers whose window has expired and whose block, if
// any, has lapsed. Idempotent; safe concurrently with Allow.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	evicted := 0
	for id, v := range l.entries {
		if v.blockedUntil.After(now) {
			continue
		}
		if now.Sub(v.windowStart) > l.window {
			delete(l.entries, id)
			evicted++
		}
	}

	return evicted
}
