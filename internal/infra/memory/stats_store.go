package memory

import (
	"context"
	"sync"

	"bible-quiz-service/internal/domain"
)

// StatsStore is an in-memory implementation of app.StatsRepository.
type StatsStore struct {
	mu    sync.RWMutex
	stats map[string]domain.UserStat
}

func NewStatsStore() *StatsStore {
	return &StatsStore{stats: make(map[string]domain.UserStat)}
}

func (s *StatsStore) Get(_ context.Context, userID string) (domain.UserStat, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stat, ok := s.stats[userID]
	return stat, ok, nil
}

func (s *StatsStore) Save(_ context.Context, stat domain.UserStat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[stat.UserID] = stat
	return nil
}

func (s *StatsStore) List(_ context.Context) ([]domain.UserStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := make([]domain.UserStat, 0, len(s.stats))
	for _, stat := range s.stats {
		stats = append(stats, stat)
	}
	return stats, nil
}
