package domain

import (
	"sort"
	"time"
)

// NoAnswer marks a question slot the user has not answered yet.
const NoAnswer = -1

// Question is a single multiple-choice trivia question. Questions are
// immutable once seeded into the catalog.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index into Options
	Category      string   `json:"category"`      // e.g. "Old Testament", "New Testament", "General"
	Difficulty    string   `json:"difficulty"`    // e.g. "Easy", "Medium", "Hard"
	Verse         string   `json:"verse,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizSession is one user's attempt at a fixed, pre-sampled sequence of
// questions. The snapshot is taken at start time; later catalog edits never
// alter an in-progress session.
type QuizSession struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId,omitempty"` // empty = anonymous
	Category       string     `json:"category"`
	Difficulty     string     `json:"difficulty"`
	QuestionIDs    []string   `json:"questions"`
	Answers        []int      `json:"answers"` // same length as QuestionIDs, NoAnswer when unanswered
	Score          int        `json:"score"`   // valid only once CompletedAt is set
	TotalQuestions int        `json:"totalQuestions"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

// Completed reports whether the session has been scored.
func (s *QuizSession) Completed() bool {
	return s.CompletedAt != nil
}

// SessionView is a session with its question references resolved at read
// time. References whose target no longer exists are dropped.
type SessionView struct {
	QuizSession
	Questions []Question `json:"resolvedQuestions"`
}

// QuizResult is the outcome of completing a session.
type QuizResult struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
}

// UserStat is the per-user running aggregate used for ranking. One record
// per user ID, created on the first completed quiz and never deleted.
type UserStat struct {
	UserID       string    `json:"userId"`
	TotalQuizzes int       `json:"totalQuizzes"`
	TotalScore   int       `json:"totalScore"`
	BestScore    int       `json:"bestScore"`
	Streak       int       `json:"streak"`
	LastQuizDate time.Time `json:"lastQuizDate"`
}

// SortStats orders stats for the leaderboard: best score descending, ties
// broken by total score descending, then user ID ascending so equal records
// always rank deterministically.
func SortStats(stats []UserStat) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].BestScore != stats[j].BestScore {
			return stats[i].BestScore > stats[j].BestScore
		}
		if stats[i].TotalScore != stats[j].TotalScore {
			return stats[i].TotalScore > stats[j].TotalScore
		}
		return stats[i].UserID < stats[j].UserID
	})
}
