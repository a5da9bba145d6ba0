package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"bible-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogStore loads and appends catalog questions in Postgres. Options are
// kept as JSONB so a question row round-trips without a join table.
type CatalogStore struct {
	pool *pgxpool.Pool
}

func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

func (s *CatalogStore) LoadCatalog(ctx context.Context) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, question, options, correct_answer, category, difficulty, COALESCE(verse, ''), COALESCE(explanation, '') FROM questions`)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		var options []byte
		if err := rows.Scan(&q.ID, &q.Text, &options, &q.CorrectAnswer, &q.Category, &q.Difficulty, &q.Verse, &q.Explanation); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return questions, nil
}

func (s *CatalogStore) AppendQuestions(ctx context.Context, questions []domain.Question) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("marshal options: %w", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO questions (id, question, options, correct_answer, category, difficulty, verse, explanation)
			 VALUES ($1, $2, $3::jsonb, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))`,
			q.ID, q.Text, string(options), q.CorrectAnswer, q.Category, q.Difficulty, q.Verse, q.Explanation)
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
	}
	return tx.Commit(ctx)
}
