package registration

import (
	"context"
	"sync"
	"time"

	"uniconnect/internal/domain"
)

// SessionStore keeps sessions between messages. Get returns
// domain.ErrNotFound when the user has no live session.
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, userID int64) error
}

// MemoryStore is a process-local SessionStore. Sessions idle longer than
// ttl are dropped on access.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]Session), ttl: ttl, now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, userID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl {
		delete(m.sessions, userID)
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.UserID] = s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}
