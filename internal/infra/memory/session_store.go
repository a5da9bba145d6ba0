package memory

import (
	"context"
	"sync"

	"bible-quiz-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Records are stored as deep copies so each Save is atomic at the record
// level; concurrent writers to the same session are last-write-wins.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.QuizSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.QuizSession)}
}

func (s *SessionStore) Create(ctx context.Context, session domain.QuizSession) error {
	return s.Save(ctx, session)
}

func (s *SessionStore) Get(_ context.Context, id string) (domain.QuizSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return domain.QuizSession{}, domain.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

func (s *SessionStore) Save(_ context.Context, session domain.QuizSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

func cloneSession(session domain.QuizSession) domain.QuizSession {
	session.QuestionIDs = append([]string(nil), session.QuestionIDs...)
	session.Answers = append([]int(nil), session.Answers...)
	if session.CompletedAt != nil {
		completedAt := *session.CompletedAt
		session.CompletedAt = &completedAt
	}
	return session
}
