package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a session ID resolves to nothing.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuestionNotFound indicates a referenced question ID is unknown.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidQuestionIndex indicates an index outside the session's question sequence.
	ErrInvalidQuestionIndex = errors.New("question index out of range")
	// ErrInvalidAnswer indicates an answer outside the question's option range.
	ErrInvalidAnswer = errors.New("answer out of range for question")
	// ErrAlreadyCompleted is returned when mutating a session that has been scored.
	ErrAlreadyCompleted = errors.New("quiz session already completed")
	// ErrCatalogReadOnly indicates the question backend cannot accept writes.
	ErrCatalogReadOnly = errors.New("question catalog is read-only")
)
