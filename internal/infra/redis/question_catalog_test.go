package redis

import (
	"context"
	"testing"
	"time"

	"bible-quiz-service/internal/domain"
	"bible-quiz-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
)

func TestQuestionCatalogCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{CatalogLoader: memory.NewStaticCatalogLoader(sampleCatalog())}
	catalog := NewQuestionCatalog(newClient(mr), loader, time.Minute)

	matched, err := catalog.FilterByCategory(context.Background(), "Old Testament", "Easy")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(matched) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matched))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("quiz:catalog") {
		t.Fatalf("expected catalog cached in redis")
	}

	// Second read hits the Redis copy, loader not incremented.
	if _, err := catalog.Categories(context.Background()); err != nil {
		t.Fatalf("categories: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionCatalogAppendDropsCachedCopy(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{CatalogLoader: memory.NewStaticCatalogLoader(sampleCatalog())}
	catalog := NewQuestionCatalog(newClient(mr), loader, time.Minute)

	if _, err := catalog.Categories(context.Background()); err != nil {
		t.Fatalf("categories: %v", err)
	}
	if err := catalog.AddQuestions(context.Background(), []domain.Question{
		{ID: "q9", Text: "extra", Options: []string{"a", "b"}, Category: "General", Difficulty: "Easy"},
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if mr.Exists("quiz:catalog") {
		t.Fatalf("expected cached catalog dropped after append")
	}

	categories, err := catalog.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected 3 categories after append, got %v", categories)
	}
}

type countingLoader struct {
	memory.CatalogLoader
	calls int
}

func (l *countingLoader) LoadCatalog(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.CatalogLoader.LoadCatalog(ctx)
}

func (l *countingLoader) AppendQuestions(ctx context.Context, questions []domain.Question) error {
	return l.CatalogLoader.(memory.CatalogAppender).AppendQuestions(ctx, questions)
}

func sampleCatalog() []domain.Question {
	return []domain.Question{
		{ID: "q1", Text: "In how many days did God create the world?", Options: []string{"5", "6", "7", "8"}, CorrectAnswer: 1, Category: "Old Testament", Difficulty: "Easy"},
		{ID: "q2", Text: "Where was Jesus born?", Options: []string{"Nazareth", "Bethlehem"}, CorrectAnswer: 1, Category: "New Testament", Difficulty: "Easy"},
	}
}
