package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"qa-quiz-service/internal/app"
	"qa-quiz-service/internal/domain"
)

// maxDocumentBytes caps the request body of a generation call.
const maxDocumentBytes = 8 << 20

// QuizHandler exposes quiz generation over plain HTTP.
type QuizHandler struct {
	service *app.QuizService
}

func NewQuizHandler(service *app.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

// Register mounts the quiz routes on mux.
func (h *QuizHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /quizzes", h.Create)
	mux.HandleFunc("GET /quizzes/{id}", h.Get)
	mux.HandleFunc("GET /quizzes/{id}/report", h.Report)
}

// Create generates a quiz from the document in the request body.
func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid generate request: "+err.Error())
		return
	}

	quiz, err := h.service.Generate(r.Context(), req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.Header().Set("Location", "/quizzes/"+quiz.ID)
	writeJSON(w, http.StatusCreated, quiz)
}

// Get returns the quiz record of a generated quiz.
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, quiz.Quiz)
}

// Report returns how the source document of a quiz was parsed.
func (h *QuizHandler) Report(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, quiz.Report)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrQuizNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownDomain):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrExtractionEmpty),
		errors.Is(err, domain.ErrInsufficientPairs),
		errors.Is(err, domain.ErrAssemblyEmptyPool),
		errors.Is(err, domain.ErrDistractorShortfall):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorPayload{Message: message})
}
