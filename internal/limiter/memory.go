package limiter

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process limiter with sliding window and lockout. It
// backs login throttling for both storage drivers, since the flat-file
// deployment has no SQL store to keep counters in.
type Memory struct {
	mu       sync.Mutex
	window   time.Duration
	maxFails int
	blockFor time.Duration
	entries  map[string]*entry
	now      func() time.Time
}

type entry struct {
	fails        int
	firstFail    time.Time
	blockedUntil time.Time
}

// NewMemory constructs an in-memory limiter.
func NewMemory(window time.Duration, maxFails int, blockFor time.Duration) *Memory {
	return &Memory{
		window:   window,
		maxFails: maxFails,
		blockFor: blockFor,
		entries:  make(map[string]*entry),
		now:      time.Now,
	}
}

func key(username string, ipHash []byte) string {
	return username + "\x00" + string(ipHash)
}

// Allow reports whether login is currently allowed and a retry-after duration.
func (l *Memory) Allow(ctx context.Context, username string, ipHash []byte) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key(username, ipHash)]
	if !ok {
		return true, 0, nil
	}
	now := l.now()
	if e.blockedUntil.After(now) {
		return false, e.blockedUntil.Sub(now), nil
	}
	return true, 0, nil
}

// Success resets counters after a successful login.
func (l *Memory) Success(ctx context.Context, username string, ipHash []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, key(username, ipHash))
	return nil
}

// Failure records a failed attempt; reaching the threshold within the
// window places a temporary block.
func (l *Memory) Failure(ctx context.Context, username string, ipHash []byte) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(username, ipHash)
	now := l.now()
	e, ok := l.entries[k]
	if !ok || now.Sub(e.firstFail) > l.window {
		e = &entry{firstFail: now}
		l.entries[k] = e
	}
	e.fails++
	if e.fails >= l.maxFails {
		e.blockedUntil = now.Add(l.blockFor)
		return true, l.blockFor, nil
	}
	return false, 0, nil
}
