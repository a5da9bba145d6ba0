package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bible-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionStore persists quiz sessions as JSON values in Redis, one key per
// session. A zero TTL keeps sessions forever; a positive TTL lets deployments
// expire abandoned sessions. Individual SETs are atomic at the record level,
// so concurrent writers to one session are last-write-wins.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, session domain.QuizSession) error {
	return s.Save(ctx, session)
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.QuizSession, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.QuizSession{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.QuizSession{}, fmt.Errorf("get session: %w", err)
	}
	var session domain.QuizSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.QuizSession{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, session domain.QuizSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "quiz:session:" + id
}
