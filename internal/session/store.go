package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/subtrainer/subtrainer/internal/quiz"
)

var ErrNotFound = errors.New("quiz session not found")

type Store interface {
	Create(s *quiz.Session) (string, error)
	// Update runs fn with exclusive access to the session.
	Update(id string, fn func(*quiz.Session) error) error
	Delete(id string) error
	Len() int
}

type entry struct {
	mu       sync.Mutex
	session  *quiz.Session
	lastUsed time.Time
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

// NewInMemoryStore keeps sessions in process memory. Sessions idle for longer
// than ttl are dropped when new ones are created; ttl <= 0 keeps them forever.
func NewInMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		sessions: map[string]*entry{},
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *memoryStore) Create(s *quiz.Session) (string, error) {
	if s == nil {
		return "", errors.New("nil session")
	}
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	m.sessions[id] = &entry{session: s, lastUsed: m.now()}
	return id, nil
}

func (m *memoryStore) Update(id string, fn func(*quiz.Session) error) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = m.now()
	return fn(e.session)
}

func (m *memoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *memoryStore) sweepLocked() {
	if m.ttl <= 0 {
		return
	}
	cutoff := m.now().Add(-m.ttl)
	for id, e := range m.sessions {
		e.mu.Lock()
		stale := e.lastUsed.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(m.sessions, id)
		}
	}
}
