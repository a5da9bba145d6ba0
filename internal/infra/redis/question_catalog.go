package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"bible-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const catalogKey = "quiz:catalog"

// CatalogLoader fetches the full question catalog from a backing store.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.Question, error)
}

// CatalogAppender is implemented by loaders that accept new questions.
type CatalogAppender interface {
	AppendQuestions(ctx context.Context, questions []domain.Question) error
}

// QuestionCatalog caches the serialized catalog in Redis and falls back to
// the loader on cache miss, so multiple instances share one warm copy.
type QuestionCatalog struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionCatalog(client *redis.Client, loader CatalogLoader, ttl time.Duration) *QuestionCatalog {
	return &QuestionCatalog{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCatalog) FilterByCategory(ctx context.Context, category, difficulty string) ([]domain.Question, error) {
	questions, err := c.catalog(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Question, 0)
	for _, q := range questions {
		if q.Category != category {
			continue
		}
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		matched = append(matched, q)
	}
	return matched, nil
}

func (c *QuestionCatalog) QuestionsByID(ctx context.Context, ids []string) (map[string]domain.Question, error) {
	questions, err := c.catalog(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	resolved := make(map[string]domain.Question, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			resolved[id] = q
		}
	}
	return resolved, nil
}

func (c *QuestionCatalog) Categories(ctx context.Context) ([]string, error) {
	questions, err := c.catalog(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, q := range questions {
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		categories = append(categories, q.Category)
	}
	return categories, nil
}

func (c *QuestionCatalog) AddQuestions(ctx context.Context, questions []domain.Question) error {
	appender, ok := c.loader.(CatalogAppender)
	if !ok {
		return domain.ErrCatalogReadOnly
	}
	if err := appender.AppendQuestions(ctx, questions); err != nil {
		return err
	}
	// Drop the cached copy so the next read sees the new questions.
	return c.client.Del(ctx, catalogKey).Err()
}

func (c *QuestionCatalog) catalog(ctx context.Context) ([]domain.Question, error) {
	if questions, ok, err := c.cached(ctx); err == nil && ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(catalogKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok, err := c.cached(ctx); err == nil && ok {
			return questions, nil
		}

		questions, err := c.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(questions)
		if err != nil {
			return nil, fmt.Errorf("marshal catalog: %w", err)
		}
		_ = c.client.Set(ctx, catalogKey, raw, c.ttlWithJitter()).Err()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCatalog) cached(ctx context.Context) ([]domain.Question, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, false, err
	}
	return questions, true, nil
}

func (c *QuestionCatalog) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
