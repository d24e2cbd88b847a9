package auth

import (
	"fmt"
	"sync"
	"time"
)

// attemptRecord tracks failed logins for one client address. While
// blockedUntil is in the future the attempt count is frozen: further
// failures neither extend nor shorten the block. Once the block expires the
// whole record is deleted.
type attemptRecord struct {
	attempts     int
	blockedUntil time.Time
}

// LoginLimiter blocks repeated failed login attempts per client address.
// State is held in process memory, so the blocking guarantee is
// per-instance only when the service is scaled horizontally.
type LoginLimiter struct {
	mu            sync.Mutex
	records       map[string]*attemptRecord
	maxAttempts   int
	blockDuration time.Duration
	now           func() time.Time
}

// LimitStatus reports the limiter's view of one address.
type LimitStatus struct {
	Attempts          int
	Blocked           bool
	RemainingAttempts int
	RetryAfter        time.Duration
}

// NewLoginLimiter builds a limiter with the given threshold and block
// duration. Each instance owns its own map; inject one per process.
func NewLoginLimiter(maxAttempts int, blockDuration time.Duration) *LoginLimiter {
	return &LoginLimiter{
		records:       make(map[string]*attemptRecord),
		maxAttempts:   maxAttempts,
		blockDuration: blockDuration,
		now:           time.Now,
	}
}

// Check reports whether the address may attempt a login right now. A
// blocked address is rejected before any credential lookup runs. An expired
// block deletes the record lazily.
func (l *LoginLimiter) Check(address string) LimitStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[address]
	if !ok {
		return LimitStatus{RemainingAttempts: l.maxAttempts}
	}

	now := l.now()
	if !rec.blockedUntil.IsZero() {
		if rec.blockedUntil.After(now) {
			return LimitStatus{
				Attempts:   rec.attempts,
				Blocked:    true,
				RetryAfter: rec.blockedUntil.Sub(now),
			}
		}
		delete(l.records, address)
		return LimitStatus{RemainingAttempts: l.maxAttempts}
	}

	return LimitStatus{
		Attempts:          rec.attempts,
		RemainingAttempts: l.maxAttempts - rec.attempts,
	}
}

// RecordFailure registers a failed attempt and blocks the address when the
// threshold is reached. Failures during an active block are ignored.
func (l *LoginLimiter) RecordFailure(address string) LimitStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.records[address]
	if !ok {
		rec = &attemptRecord{}
		l.records[address] = rec
	}

	if rec.blockedUntil.IsZero() || !rec.blockedUntil.After(now) {
		rec.attempts++
		if rec.attempts >= l.maxAttempts {
			rec.blockedUntil = now.Add(l.blockDuration)
		}
	}

	if rec.blockedUntil.After(now) {
		return LimitStatus{
			Attempts:   rec.attempts,
			Blocked:    true,
			RetryAfter: rec.blockedUntil.Sub(now),
		}
	}
	return LimitStatus{
		Attempts:          rec.attempts,
		RemainingAttempts: l.maxAttempts - rec.attempts,
	}
}

// RecordSuccess clears all state for the address after a successful login.
func (l *LoginLimiter) RecordSuccess(address string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.records, address)
}

// Sweep removes records whose block has expired and returns how many were
// purged. Correctness does not depend on it; Check expires lazily. Sweep
// only bounds memory growth.
func (l *LoginLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	purged := 0
	for address, rec := range l.records {
		if !rec.blockedUntil.IsZero() && !rec.blockedUntil.After(now) {
			delete(l.records, address)
			purged++
		}
	}
	return purged
}

// RetryMessage renders a block duration the way the login page shows it.
func RetryMessage(retryAfter time.Duration) string {
	seconds := int(retryAfter.Round(time.Second).Seconds())
	if seconds < 1 {
		seconds = 1
	}
	minutes := seconds / 60
	seconds = seconds % 60

	if minutes > 0 {
		return fmt.Sprintf("Too many login attempts. Please try again in %s and %s.",
			plural(minutes, "minute"), plural(seconds, "second"))
	}
	return fmt.Sprintf("Too many login attempts. Please try again in %s.", plural(seconds, "second"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
