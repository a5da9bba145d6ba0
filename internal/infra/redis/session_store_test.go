package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"bible-quiz-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewSessionStore(newClient(mr), 0)

	session := domain.QuizSession{
		ID:             "s1",
		UserID:         "u1",
		Category:       "Old Testament",
		Difficulty:     "Easy",
		QuestionIDs:    []string{"q1", "q2"},
		Answers:        []int{domain.NoAnswer, 1},
		TotalQuestions: 2,
		StartedAt:      time.Now().UTC().Truncate(time.Second),
	}
	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !mr.Exists("quiz:session:s1") {
		t.Fatalf("expected session key in redis")
	}

	loaded, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.UserID != "u1" || len(loaded.Answers) != 2 || loaded.Answers[1] != 1 {
		t.Fatalf("unexpected session: %+v", loaded)
	}
	if loaded.Completed() {
		t.Fatalf("expected in-progress session")
	}
}

func TestSessionStoreNotFound(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), 0)
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSessionStoreAppliesTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute)
	if err := store.Save(context.Background(), domain.QuizSession{ID: "s1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if mr.TTL("quiz:session:s1") != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", mr.TTL("quiz:session:s1"))
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}
