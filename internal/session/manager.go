package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/cwrk-planet/conference-service/internal/domain"
)

// Manager хранит живые сессии по ID. Одна сессия — одна страница конференции.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) Create(conferenceID string, self domain.Participant, opts Options) *Session {
	s := newSession(uuid.NewString(), conferenceID, self, opts)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	s.start()
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Close закрывает сессию и убирает её из реестра.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	s.Close()
	return nil
}

// CloseAll — на graceful shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	ss := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		ss = append(ss, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range ss {
		s.Close()
	}
}
