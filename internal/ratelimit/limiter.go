// Package ratelimit bounds request frequency per key with a sliding window.
// A key that reaches the limit can be banned outright for a fixed duration.
// State is process-local and is lost on restart.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds; zero when allowed.
func (d Decision) RetryAfterSeconds() int {
	if d.Allowed || d.RetryAfter <= 0 {
		return 0
	}
	return int(math.Ceil(d.RetryAfter.Seconds()))
}

// Stats describes the current state of a key.
type Stats struct {
	RequestsInWindow int           `json:"requests_in_window"`
	Banned           bool          `json:"banned"`
	BanRemaining     time.Duration `json:"ban_remaining"`
}

type entry struct {
	requests    []time.Time
	bannedUntil time.Time
}

// Limiter limits requests per key (e.g. user ID or client IP).
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	ban     time.Duration
	now     func() time.Time
	log     *zap.Logger
}

type Option func(*Limiter)

// WithClock replaces time.Now, for simulated time in tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(l *Limiter) { l.log = log }
}

// New returns a limiter allowing limit requests per window. With ban > 0 the
// request that finds the window full starts a ban of that length; with
// ban == 0 requests are only refused until the window frees a slot.
func New(limit int, window, ban time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		ban:     ban,
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func prune(times []time.Time, cutoff time.Time) []time.Time {
	valid := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	return valid
}

// Allow records a request for key when it is within the limit.
func (l *Limiter) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.requests = prune(e.requests, now.Add(-l.window))

	if !e.bannedUntil.IsZero() {
		if now.Before(e.bannedUntil) {
			return Decision{RetryAfter: e.bannedUntil.Sub(now)}
		}
		e.bannedUntil = time.Time{}
	}

	if len(e.requests) >= l.limit {
		if l.ban > 0 {
			e.bannedUntil = now.Add(l.ban)
			l.log.Warn("rate limit exceeded, key banned",
				zap.String("key", key),
				zap.Duration("ban", l.ban),
			)
			return Decision{RetryAfter: l.ban}
		}
		return Decision{RetryAfter: e.requests[0].Add(l.window).Sub(now)}
	}

	e.requests = append(e.requests, now)
	return Decision{Allowed: true}
}

// Reset forgets all requests and any ban for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}

func (l *Limiter) Stats(key string) Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	e, ok := l.entries[key]
	if !ok {
		return Stats{}
	}
	cutoff := now.Add(-l.window)
	var s Stats
	for _, t := range e.requests {
		if t.After(cutoff) {
			s.RequestsInWindow++
		}
	}
	if now.Before(e.bannedUntil) {
		s.Banned = true
		s.BanRemaining = e.bannedUntil.Sub(now)
	}
	return s
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Cleanup drops keys with no request in the window and no active ban.
func (l *Limiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cutoff := now.Add(-l.window)
	for k, e := range l.entries {
		e.requests = prune(e.requests, cutoff)
		if len(e.requests) == 0 && !now.Before(e.bannedUntil) {
			delete(l.entries, k)
		}
	}
}

// Run calls Cleanup every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			l.Cleanup()
		}
	}
}
