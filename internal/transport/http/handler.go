package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bible-quiz-service/internal/app"
	"bible-quiz-service/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Handler exposes the quiz operations as a JSON REST API.
type Handler struct {
	service  *app.QuizService
	validate *validator.Validate
	log      logrus.FieldLogger
}

func NewHandler(service *app.QuizService) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		log:      logrus.StandardLogger(),
	}
}

// Routes mounts the REST surface on a chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/quizzes", h.StartQuiz)
	r.Get("/quizzes/{sessionID}", h.GetQuizSession)
	r.Post("/quizzes/{sessionID}/answers", h.SubmitAnswer)
	r.Post("/quizzes/{sessionID}/complete", h.CompleteQuiz)
	r.Get("/leaderboard", h.Leaderboard)
	r.Get("/categories", h.Categories)
	r.Get("/questions", h.SampleQuestions)
	r.Post("/questions/seed", h.SeedQuestions)

	return r
}

type startQuizRequest struct {
	Category   string `json:"category" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required"`
	UserID     string `json:"userId"`
}

type submitAnswerRequest struct {
	QuestionIndex *int `json:"questionIndex" validate:"required"`
	Answer        *int `json:"answer" validate:"required"`
}

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	sessionID, err := h.service.StartQuiz(r.Context(), req.Category, req.Difficulty, req.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"sessionId": sessionID})
}

func (h *Handler) GetQuizSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetQuizSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	err := h.service.SubmitAnswer(r.Context(), chi.URLParam(r, "sessionID"), *req.QuestionIndex, *req.Answer)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "answer submitted"})
}

func (h *Handler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CompleteQuiz(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)
	entries, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) SampleQuestions(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		h.badRequest(w, "category is required")
		return
	}
	questions, err := h.service.SampleQuestions(r.Context(), category, r.URL.Query().Get("difficulty"), queryInt(r, "limit", 0))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) SeedQuestions(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.SeedSampleQuestions(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "sample questions added",
		"count":  count,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrQuestionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	case errors.Is(err, domain.ErrInvalidQuestionIndex), errors.Is(err, domain.ErrInvalidAnswer):
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	case errors.Is(err, domain.ErrAlreadyCompleted):
		writeJSON(w, http.StatusConflict, map[string]string{"message": err.Error()})
	default:
		h.log.WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return fallback
}
