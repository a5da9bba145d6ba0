package redis

import (
	"context"
	"testing"

	"bible-quiz-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
)

func TestStatsStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewStatsStore(newClient(mr))

	if _, ok, err := store.Get(ctx, "alice"); err != nil || ok {
		t.Fatalf("expected no record, ok=%v err=%v", ok, err)
	}

	if err := store.Save(ctx, domain.UserStat{UserID: "alice", TotalQuizzes: 1, TotalScore: 5, BestScore: 5, Streak: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("quiz:stats:alice") || !mr.Exists("quiz:stats:users") {
		t.Fatalf("expected stats record and user-set keys")
	}

	stat, ok, err := store.Get(ctx, "alice")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if stat.TotalScore != 5 || stat.BestScore != 5 {
		t.Fatalf("unexpected stat: %+v", stat)
	}
}

func TestStatsStoreListsAllUsers(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewStatsStore(newClient(mr))

	for i, id := range []string{"alice", "bob", "carol"} {
		if err := store.Save(ctx, domain.UserStat{UserID: id, TotalQuizzes: 1, TotalScore: i, BestScore: i}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	stats, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 records, got %d", len(stats))
	}
}
