package cart

import (
	"context"
	"sync"
	"time"
)

// SessionManager owns one cart per browser session. Carts are created on
// first touch and dropped when the session ends or goes idle past the TTL.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
}

type session struct {
	cart     *Cart
	lastSeen time.Time
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
		ttl:      ttl,
	}
}

// GetOrCreate returns the cart for a session, creating it on first use.
func (m *SessionManager) GetOrCreate(sessionID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		s = &session{cart: New()}
		m.sessions[sessionID] = s
	}
	s.lastSeen = time.Now()
	return s.cart
}

// End drops a session and its cart. Ending an unknown session is a no-op.
func (m *SessionManager) End(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// PurgeExpired removes sessions idle longer than the TTL and reports how
// many were dropped.
func (m *SessionManager) PurgeExpired(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	purged := 0
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.ttl {
			delete(m.sessions, id)
			purged++
		}
	}
	return purged
}

// StartJanitor purges expired sessions on an interval until ctx is done.
func (m *SessionManager) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.PurgeExpired(time.Now())
			}
		}
	}()
}
