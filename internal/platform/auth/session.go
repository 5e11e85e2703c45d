package auth

import (
	"context"
	"sync"
	"time"
)

// SessionTracker keeps the expiry timestamp of each logged-in user. Expiry is
// checked on every request and swept on a polling interval.
type SessionTracker struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]time.Time
	onExpire []func(userID string)
	now      func() time.Time
}

// NewSessionTracker creates a tracker whose sessions last ttl.
func NewSessionTracker(ttl time.Duration) *SessionTracker {
	return &SessionTracker{
		ttl:      ttl,
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

// OnExpire registers a callback run for every session removed by Sweep or End.
func (t *SessionTracker) OnExpire(fn func(userID string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onExpire = append(t.onExpire, fn)
}

// Start opens (or renews) a session and returns its expiry.
func (t *SessionTracker) Start(userID string) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	expiry := t.now().Add(t.ttl)
	t.sessions[userID] = expiry
	return expiry
}

// Expiry returns the session expiry for userID.
func (t *SessionTracker) Expiry(userID string) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	exp, ok := t.sessions[userID]
	return exp, ok
}

// Active reports whether userID has an unexpired session.
func (t *SessionTracker) Active(userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	exp, ok := t.sessions[userID]
	return ok && t.now().Before(exp)
}

// End closes the session of userID.
func (t *SessionTracker) End(userID string) {
	t.mu.Lock()
	_, ok := t.sessions[userID]
	delete(t.sessions, userID)
	callbacks := append([]func(string){}, t.onExpire...)
	t.mu.Unlock()

	if ok {
		for _, fn := range callbacks {
			fn(userID)
		}
	}
}

// Sweep removes expired sessions and returns their user ids.
func (t *SessionTracker) Sweep() []string {
	t.mu.Lock()
	now := t.now()
	var expired []string
	for userID, exp := range t.sessions {
		if !now.Before(exp) {
			expired = append(expired, userID)
			delete(t.sessions, userID)
		}
	}
	callbacks := append([]func(string){}, t.onExpire...)
	t.mu.Unlock()

	for _, userID := range expired {
		for _, fn := range callbacks {
			fn(userID)
		}
	}
	return expired
}

// Run sweeps every interval until ctx is cancelled.
func (t *SessionTracker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Sweep()
		}
	}
}
