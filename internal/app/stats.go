package app

import (
	"context"
	"time"

	"bible-quiz-service/internal/domain"
	"github.com/sirupsen/logrus"
)

// DefaultLeaderboardLimit is applied when callers pass a non-positive limit.
const DefaultLeaderboardLimit = 10

// StatsRepository abstracts per-user aggregate storage.
type StatsRepository interface {
	// Get reports ok=false when the user has no stats record yet.
	Get(ctx context.Context, userID string) (domain.UserStat, bool, error)
	Save(ctx context.Context, stat domain.UserStat) error
	List(ctx context.Context) ([]domain.UserStat, error)
}

// StatsAggregator folds completed quiz scores into per-user running stats
// and serves the leaderboard projection over them.
type StatsAggregator struct {
	repo StatsRepository
	hub  *LeaderboardHub
	now  func() time.Time
	log  logrus.FieldLogger
}

func NewStatsAggregator(repo StatsRepository, hub *LeaderboardHub) *StatsAggregator {
	return NewStatsAggregatorWithClock(repo, hub, time.Now)
}

// NewStatsAggregatorWithClock pins the clock for deterministic streak tests.
func NewStatsAggregatorWithClock(repo StatsRepository, hub *LeaderboardHub, now func() time.Time) *StatsAggregator {
	return &StatsAggregator{repo: repo, hub: hub, now: now, log: logrus.StandardLogger()}
}

// RecordCompletion creates or updates the user's stats record: quiz count
// +1, total score += score, best score via max-comparison, streak advanced
// by consecutive-day play. Returns the updated record.
func (a *StatsAggregator) RecordCompletion(ctx context.Context, userID string, score int) (domain.UserStat, error) {
	now := a.now()

	stat, ok, err := a.repo.Get(ctx, userID)
	if err != nil {
		return domain.UserStat{}, err
	}
	if !ok {
		stat = domain.UserStat{
			UserID:       userID,
			TotalQuizzes: 1,
			TotalScore:   score,
			BestScore:    score,
			Streak:       1,
			LastQuizDate: now,
		}
	} else {
		stat.TotalQuizzes++
		stat.TotalScore += score
		if score > stat.BestScore {
			stat.BestScore = score
		}
		stat.Streak = nextStreak(stat, now)
		stat.LastQuizDate = now
	}

	if err := a.repo.Save(ctx, stat); err != nil {
		return domain.UserStat{}, err
	}
	a.publish(ctx)
	return stat, nil
}

// Leaderboard returns stats sorted best-score-first (ties by total score,
// then user ID), truncated to limit.
func (a *StatsAggregator) Leaderboard(ctx context.Context, limit int) ([]domain.UserStat, error) {
	stats, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortStats(stats)
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

func (a *StatsAggregator) publish(ctx context.Context) {
	if a.hub == nil {
		return
	}
	top, err := a.Leaderboard(ctx, DefaultLeaderboardLimit)
	if err != nil {
		a.log.WithError(err).Warn("skipping leaderboard broadcast")
		return
	}
	a.hub.Broadcast(top)
}

// nextStreak advances the consecutive-day counter from the previous quiz
// date: same UTC day keeps it, the following day increments it, any longer
// gap resets to 1.
func nextStreak(stat domain.UserStat, now time.Time) int {
	today := now.UTC().Truncate(24 * time.Hour)
	last := stat.LastQuizDate.UTC().Truncate(24 * time.Hour)
	switch int(today.Sub(last).Hours() / 24) {
	case 0:
		return stat.Streak
	case 1:
		return stat.Streak + 1
	default:
		return 1
	}
}
