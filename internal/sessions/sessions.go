// Package sessions holds in-progress grading sessions in memory. Sessions are
// working state, not a system of record; the durable record is the assembled
// submission.
package sessions

import (
	"sync"

	"github.com/gradeport/gradeport/internal/models"
)

type Store struct {
	sessions map[string]*models.GradingSession
	mu       sync.RWMutex
}

func New() *Store {
	return &Store{
		sessions: make(map[string]*models.GradingSession),
	}
}

func (s *Store) Get(sessionID string) (*models.GradingSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *Store) Set(sessionID string, session *models.GradingSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

func (s *Store) GetAll() map[string]*models.GradingSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.GradingSession, len(s.sessions))
	for k, v := range s.sessions {
		result[k] = v
	}
	return result
}

func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Update applies fn to the session under the write lock, so analysis results
// merge without racing concurrent edits. It reports whether the session
// exists.
func (s *Store) Update(sessionID string, fn func(*models.GradingSession)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, exists := s.sessions[sessionID]
	if !exists {
		return false
	}
	fn(session)
	return true
}
