package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"bible-quiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches the full question catalog from a backing store.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.Question, error)
}

// CatalogAppender is implemented by loaders that accept new questions.
type CatalogAppender interface {
	AppendQuestions(ctx context.Context, questions []domain.Question) error
}

// QuestionCatalog is a read-through cache over a CatalogLoader with TTL to
// avoid repeated backing-store hits. The catalog is read-mostly, so one
// cached snapshot serves every query shape.
type QuestionCatalog struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    []domain.Question
	expiresAt time.Time
}

func NewQuestionCatalog(loader CatalogLoader, ttl time.Duration) *QuestionCatalog {
	return &QuestionCatalog{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
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
	c.invalidate()
	return nil
}

func (c *QuestionCatalog) catalog(ctx context.Context) ([]domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if c.cached != nil && c.expiresAt.After(now) {
		questions := c.cached
		c.mu.RUnlock()
		return questions, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("catalog", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.cached != nil && c.expiresAt.After(now) {
			questions := c.cached
			c.mu.RUnlock()
			return questions, nil
		}
		c.mu.RUnlock()

		questions, err := c.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cached = questions
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCatalog) invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

func (c *QuestionCatalog) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StaticCatalogLoader is an appendable in-memory loader (useful for tests/demos).
type StaticCatalogLoader struct {
	mu        sync.RWMutex
	questions []domain.Question
}

func NewStaticCatalogLoader(questions []domain.Question) *StaticCatalogLoader {
	return &StaticCatalogLoader{questions: append([]domain.Question(nil), questions...)}
}

func (l *StaticCatalogLoader) LoadCatalog(_ context.Context) ([]domain.Question, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.Question(nil), l.questions...), nil
}

func (l *StaticCatalogLoader) AppendQuestions(_ context.Context, questions []domain.Question) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.questions = append(l.questions, questions...)
	return nil
}
