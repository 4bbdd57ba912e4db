package storage

import (
	"sync"

	"github.com/shelfsort/bookident/internal/models"
)

type SessionStore struct {
	sessions map[string]*models.IdentifySession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.IdentifySession),
	}
}

func (s *SessionStore) Get(sessionID string) (*models.IdentifySession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) Set(sessionID string, session *models.IdentifySession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

func (s *SessionStore) GetAll() map[string]*models.IdentifySession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.IdentifySession, len(s.sessions))
	for k, v := range s.sessions {
		result[k] = v
	}
	return result
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
