package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"bible-quiz-service/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultSampleSize caps how many questions a session draws from the catalog.
const DefaultSampleSize = 10

// QuestionRepository abstracts the question catalog (in-memory, Redis-cached, Postgres).
type QuestionRepository interface {
	// FilterByCategory returns questions matching category, and difficulty when non-empty.
	FilterByCategory(ctx context.Context, category, difficulty string) ([]domain.Question, error)
	// QuestionsByID resolves IDs to questions; unknown IDs are simply absent from the map.
	QuestionsByID(ctx context.Context, ids []string) (map[string]domain.Question, error)
	Categories(ctx context.Context) ([]string, error)
	AddQuestions(ctx context.Context, questions []domain.Question) error
}

// SessionRepository abstracts durable quiz session storage.
type SessionRepository interface {
	Create(ctx context.Context, session domain.QuizSession) error
	// Get returns domain.ErrSessionNotFound for unknown IDs.
	Get(ctx context.Context, id string) (domain.QuizSession, error)
	Save(ctx context.Context, session domain.QuizSession) error
}

// QuizService contains the quiz session lifecycle: start, answer, complete.
type QuizService struct {
	questions  QuestionRepository
	sessions   SessionRepository
	stats      *StatsAggregator
	sampleSize int
	now        func() time.Time
	log        logrus.FieldLogger

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuizService(questions QuestionRepository, sessions SessionRepository, stats *StatsAggregator, sampleSize int) *QuizService {
	return NewQuizServiceWithClock(questions, sessions, stats, sampleSize,
		rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// NewQuizServiceWithClock injects the randomness source and clock so tests
// can pin sampling order and timestamps.
func NewQuizServiceWithClock(questions QuestionRepository, sessions SessionRepository, stats *StatsAggregator, sampleSize int, rnd *rand.Rand, now func() time.Time) *QuizService {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &QuizService{
		questions:  questions,
		sessions:   sessions,
		stats:      stats,
		sampleSize: sampleSize,
		now:        now,
		log:        logrus.StandardLogger(),
		rnd:        rnd,
	}
}

// StartQuiz samples up to sampleSize questions for the category/difficulty
// pair and creates a new session snapshotting their IDs. A pair matching no
// questions yields a valid zero-question session rather than an error.
func (s *QuizService) StartQuiz(ctx context.Context, category, difficulty, userID string) (string, error) {
	matched, err := s.questions.FilterByCategory(ctx, category, difficulty)
	if err != nil {
		return "", err
	}

	s.shuffle(matched)
	if len(matched) > s.sampleSize {
		matched = matched[:s.sampleSize]
	}

	ids := make([]string, len(matched))
	answers := make([]int, len(matched))
	for i, q := range matched {
		ids[i] = q.ID
		answers[i] = domain.NoAnswer
	}

	session := domain.QuizSession{
		ID:             uuid.NewString(),
		UserID:         userID,
		Category:       category,
		Difficulty:     difficulty,
		QuestionIDs:    ids,
		Answers:        answers,
		TotalQuestions: len(ids),
		StartedAt:      s.now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return session.ID, nil
}

// GetQuizSession resolves the session's question references at read time,
// dropping any reference whose target has disappeared from the catalog.
func (s *QuizService) GetQuizSession(ctx context.Context, sessionID string) (domain.SessionView, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}

	byID, err := s.questions.QuestionsByID(ctx, session.QuestionIDs)
	if err != nil {
		return domain.SessionView{}, err
	}
	resolved := make([]domain.Question, 0, len(session.QuestionIDs))
	for _, id := range session.QuestionIDs {
		if q, ok := byID[id]; ok {
			resolved = append(resolved, q)
		}
	}
	return domain.SessionView{QuizSession: session, Questions: resolved}, nil
}

// SubmitAnswer overwrites the answer slot at questionIndex. Re-submitting
// the same index replaces the previous value; concurrent submissions to one
// slot are last-write-wins with no conflict signal.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID string, questionIndex, answer int) error {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Completed() {
		return domain.ErrAlreadyCompleted
	}
	if questionIndex < 0 || questionIndex >= len(session.QuestionIDs) {
		return domain.ErrInvalidQuestionIndex
	}

	questionID := session.QuestionIDs[questionIndex]
	byID, err := s.questions.QuestionsByID(ctx, []string{questionID})
	if err != nil {
		return err
	}
	question, ok := byID[questionID]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	if answer < 0 || answer >= len(question.Options) {
		return domain.ErrInvalidAnswer
	}

	session.Answers[questionIndex] = answer
	return s.sessions.Save(ctx, session)
}

// CompleteQuiz scores the session position by position against the catalog
// and, for non-anonymous sessions, folds the result into the user's stats.
// Completion is one-shot: a second call fails with ErrAlreadyCompleted.
func (s *QuizService) CompleteQuiz(ctx context.Context, sessionID string) (domain.QuizResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.QuizResult{}, err
	}
	if session.Completed() {
		return domain.QuizResult{}, domain.ErrAlreadyCompleted
	}

	byID, err := s.questions.QuestionsByID(ctx, session.QuestionIDs)
	if err != nil {
		return domain.QuizResult{}, err
	}

	score := 0
	for i, id := range session.QuestionIDs {
		question, ok := byID[id]
		if !ok {
			continue // dangling reference never matches
		}
		if session.Answers[i] != domain.NoAnswer && session.Answers[i] == question.CorrectAnswer {
			score++
		}
	}

	completedAt := s.now()
	session.Score = score
	session.CompletedAt = &completedAt
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.QuizResult{}, err
	}

	if session.UserID != "" {
		// The session is already durably completed at this point; a failed
		// stats write leaves the two records inconsistent and is surfaced in
		// the logs rather than rolled back.
		if _, err := s.stats.RecordCompletion(ctx, session.UserID, score); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"sessionId": session.ID,
				"userId":    session.UserID,
			}).Warn("session completed but stats update failed")
		}
	}

	return domain.QuizResult{Score: score, TotalQuestions: session.TotalQuestions}, nil
}

// SampleQuestions is the catalog-facing query: questions for a category
// (difficulty optional), shuffled and truncated to limit.
func (s *QuizService) SampleQuestions(ctx context.Context, category, difficulty string, limit int) ([]domain.Question, error) {
	matched, err := s.questions.FilterByCategory(ctx, category, difficulty)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.sampleSize
	}
	s.shuffle(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Categories lists the distinct category labels present in the catalog.
func (s *QuizService) Categories(ctx context.Context) ([]string, error) {
	return s.questions.Categories(ctx)
}

// SeedSampleQuestions appends the built-in sample catalog and returns how
// many questions were added.
func (s *QuizService) SeedSampleQuestions(ctx context.Context) (int, error) {
	questions := SampleCatalog()
	for i := range questions {
		questions[i].ID = uuid.NewString()
	}
	if err := s.questions.AddQuestions(ctx, questions); err != nil {
		return 0, err
	}
	return len(questions), nil
}

// Leaderboard exposes the ranked stats projection through the quiz facade.
func (s *QuizService) Leaderboard(ctx context.Context, limit int) ([]domain.UserStat, error) {
	return s.stats.Leaderboard(ctx, limit)
}

// shuffle serializes access to the rand source, which is not goroutine safe.
func (s *QuizService) shuffle(questions []domain.Question) {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	s.rnd.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}
