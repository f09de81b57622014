package server

import (
	"sync"
	"time"
)

// loginRateLimiter locks a client/username pair out after repeated failed logins.
// A nil limiter allows everything.
type loginRateLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*loginAttempts
	maxFailures int
	window      time.Duration
	lockout     time.Duration
	sweepEvery  int
	calls       int
}

type loginAttempts struct {
	failures    int
	windowStart time.Time
	lockedUntil time.Time
	lastSeen    time.Time
}

func newLoginRateLimiter(maxFailures int, window, lockout time.Duration) *loginRateLimiter {
	if maxFailures <= 0 || window <= 0 || lockout <= 0 {
		return nil
	}
	return &loginRateLimiter{
		attempts:    make(map[string]*loginAttempts),
		maxFailures: maxFailures,
		window:      window,
		lockout:     lockout,
		sweepEvery:  64,
	}
}

// Allow reports whether key may attempt a login at now.
func (l *loginRateLimiter) Allow(key string, now time.Time) bool {
	if l == nil || key == "" {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked(now)

	entry, ok := l.attempts[key]
	if !ok {
		return true
	}
	entry.lastSeen = now
	return !now.Before(entry.lockedUntil)
}

// RegisterFailure counts a failed login and starts a lockout once the window fills.
func (l *loginRateLimiter) RegisterFailure(key string, now time.Time) {
	if l == nil || key == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked(now)

	entry, ok := l.attempts[key]
	if !ok {
		entry = &loginAttempts{}
		l.attempts[key] = entry
	}
	if entry.windowStart.IsZero() || now.Sub(entry.windowStart) > l.window {
		entry.failures = 0
		entry.windowStart = now
	}
	entry.failures++
	entry.lastSeen = now
	if entry.failures >= l.maxFailures {
		entry.lockedUntil = now.Add(l.lockout)
		entry.failures = 0
		entry.windowStart = time.Time{}
	}
}

// Reset forgets key after a successful login.
func (l *loginRateLimiter) Reset(key string) {
	if l == nil || key == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

func (l *loginRateLimiter) sweepLocked(now time.Time) {
	l.calls++
	if l.calls%l.sweepEvery != 0 {
		return
	}
	staleAfter := 2 * max(l.window, l.lockout)
	for key, entry := range l.attempts {
		if now.Before(entry.lockedUntil) {
			continue
		}
		if now.Sub(entry.lastSeen) > staleAfter {
			delete(l.attempts, key)
		}
	}
}
