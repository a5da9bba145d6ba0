package memory

import (
	"context"
	"testing"
	"time"

	"bible-quiz-service/internal/domain"
)

func TestQuestionCatalogCaches(t *testing.T) {
	loader := &countingLoader{CatalogLoader: NewStaticCatalogLoader(sampleCatalog())}
	catalog := NewQuestionCatalog(loader, time.Minute)

	if _, err := catalog.FilterByCategory(context.Background(), "Old Testament", "Easy"); err != nil {
		t.Fatalf("filter: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := catalog.Categories(context.Background()); err != nil {
		t.Fatalf("categories: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionCatalogFilters(t *testing.T) {
	catalog := NewQuestionCatalog(NewStaticCatalogLoader(sampleCatalog()), time.Minute)

	matched, err := catalog.FilterByCategory(context.Background(), "Old Testament", "Easy")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "q1" {
		t.Fatalf("expected only q1, got %+v", matched)
	}

	// Empty difficulty matches any.
	matched, err = catalog.FilterByCategory(context.Background(), "Old Testament", "")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 Old Testament questions, got %d", len(matched))
	}
}

func TestQuestionCatalogResolvesKnownIDs(t *testing.T) {
	catalog := NewQuestionCatalog(NewStaticCatalogLoader(sampleCatalog()), time.Minute)

	resolved, err := catalog.QuestionsByID(context.Background(), []string{"q1", "ghost", "q3"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 resolved questions, got %d", len(resolved))
	}
	if _, ok := resolved["ghost"]; ok {
		t.Fatalf("expected unknown ID to be absent")
	}
}

func TestAddQuestionsInvalidatesCache(t *testing.T) {
	loader := &countingLoader{CatalogLoader: NewStaticCatalogLoader(sampleCatalog())}
	catalog := NewQuestionCatalog(loader, time.Minute)

	if _, err := catalog.Categories(context.Background()); err != nil {
		t.Fatalf("categories: %v", err)
	}

	added := domain.Question{ID: "q9", Text: "extra", Options: []string{"a", "b"}, Category: "General", Difficulty: "Easy"}
	if err := catalog.AddQuestions(context.Background(), []domain.Question{added}); err != nil {
		t.Fatalf("add: %v", err)
	}

	categories, err := catalog.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected 3 categories after append, got %v", categories)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after append, loader calls %d", loader.calls)
	}
}

type countingLoader struct {
	CatalogLoader
	calls int
}

func (l *countingLoader) LoadCatalog(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.CatalogLoader.LoadCatalog(ctx)
}

func (l *countingLoader) AppendQuestions(ctx context.Context, questions []domain.Question) error {
	return l.CatalogLoader.(CatalogAppender).AppendQuestions(ctx, questions)
}

func sampleCatalog() []domain.Question {
	return []domain.Question{
		{ID: "q1", Text: "In how many days did God create the world?", Options: []string{"5", "6", "7", "8"}, CorrectAnswer: 1, Category: "Old Testament", Difficulty: "Easy"},
		{ID: "q2", Text: "Whom did David slay?", Options: []string{"Goliath", "Saul"}, CorrectAnswer: 0, Category: "Old Testament", Difficulty: "Medium"},
		{ID: "q3", Text: "Where was Jesus born?", Options: []string{"Nazareth", "Bethlehem"}, CorrectAnswer: 1, Category: "New Testament", Difficulty: "Easy"},
	}
}
