package question

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandlers provides REST endpoints for questions, categories and quizzes.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for the trivia endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "question_http").Logger(),
	}
}

type categoriesResponse struct {
	Success    bool           `json:"success"`
	Categories map[int]string `json:"categories"`
}

type pageResponse struct {
	Success         bool           `json:"success"`
	Questions       []Question     `json:"questions"`
	TotalQuestions  int            `json:"total_questions"`
	Categories      map[int]string `json:"categories"`
	CurrentCategory *int           `json:"current_category"`
}

type questionsResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory *int       `json:"current_category"`
}

type quizResponse struct {
	Success  bool      `json:"success"`
	Question *Question `json:"question,omitempty"`
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, categoriesResponse{
		Success:    true,
		Categories: CategoryMap(categories),
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := ParsePage(r.URL.Query().Get("page"))
	result, err := h.service.QuestionsPage(r.Context(), page)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, pageResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
		Categories:     CategoryMap(result.Categories),
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	if err := h.service.DeleteQuestion(r.Context(), id); err != nil {
		h.respondFailure(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": id,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	payload, err := h.readPayload(w, r)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	nq, err := ValidateNewQuestion(payload)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	created, err := h.service.CreateQuestion(r.Context(), nq)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"created": created.ID,
	})
}

// SearchQuestions handles POST /questions/searches
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	payload, err := h.readPayload(w, r)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	term, err := ValidateSearch(payload)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	found, err := h.service.Search(r.Context(), term)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, questionsResponse{
		Success:        true,
		Questions:      found,
		TotalQuestions: len(found),
	})
}

// ListCategoryQuestions handles GET /categories/{id}/questions
func (h *HTTPHandlers) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(r, "id")
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	found, err := h.service.QuestionsInCategory(r.Context(), categoryID)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, questionsResponse{
		Success:         true,
		Questions:       found,
		TotalQuestions:  len(found),
		CurrentCategory: &categoryID,
	})
}

// PlayQuiz handles POST /quizzes
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	payload, err := h.readPayload(w, r)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	req, err := ParseQuizRequest(payload)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	next, err := h.service.NextQuizQuestion(r.Context(), req)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, quizResponse{Success: true, Question: next})
}

func (h *HTTPHandlers) readPayload(w http.ResponseWriter, r *http.Request) (Payload, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, malformed("", "read body: %v", err)
	}
	return DecodePayload(body)
}

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *HTTPHandlers) respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	logger := logging.FromContextOr(r.Context(), h.logger)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		logger.Warn().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request rejected")
	}
	switch KindOf(err) {
	case KindMalformedInput:
		httperrors.RespondBadRequest(w)
	case KindInvalidValue:
		httperrors.RespondUnprocessable(w)
	case KindNotFound:
		httperrors.RespondNotFound(w)
	default:
		httperrors.RespondInternalError(w)
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
