package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bible-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const statsUserSetKey = "quiz:stats:users"

// StatsStore keeps one JSON record per user plus a set of known user IDs so
// the leaderboard can enumerate records. The record write and the set add go
// through a single MULTI/EXEC pipeline.
type StatsStore struct {
	client *redis.Client
}

func NewStatsStore(client *redis.Client) *StatsStore {
	return &StatsStore{client: client}
}

func (s *StatsStore) Get(ctx context.Context, userID string) (domain.UserStat, bool, error) {
	raw, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.UserStat{}, false, nil
	}
	if err != nil {
		return domain.UserStat{}, false, fmt.Errorf("get stats: %w", err)
	}
	var stat domain.UserStat
	if err := json.Unmarshal(raw, &stat); err != nil {
		return domain.UserStat{}, false, fmt.Errorf("unmarshal stats: %w", err)
	}
	return stat, true, nil
}

func (s *StatsStore) Save(ctx context.Context, stat domain.UserStat) error {
	raw, err := json.Marshal(stat)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(stat.UserID), raw, 0)
	pipe.SAdd(ctx, statsUserSetKey, stat.UserID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

func (s *StatsStore) List(ctx context.Context) ([]domain.UserStat, error) {
	userIDs, err := s.client.SMembers(ctx, statsUserSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list stats users: %w", err)
	}
	if len(userIDs) == 0 {
		return nil, nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = s.key(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	stats := make([]domain.UserStat, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue // record expired or deleted between SMEMBERS and MGET
		}
		var stat domain.UserStat
		if err := json.Unmarshal([]byte(raw), &stat); err != nil {
			return nil, fmt.Errorf("unmarshal stats: %w", err)
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

func (s *StatsStore) key(userID string) string {
	return "quiz:stats:" + userID
}
