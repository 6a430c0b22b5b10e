package handlers

import (
	"log/slog"
	"net/http"

	"github.com/GhaliAmli/student-focus/internal/models"
	"github.com/GhaliAmli/student-focus/internal/services"
	"github.com/GhaliAmli/student-focus/internal/store"
	"github.com/go-chi/chi/v5"
)

type ExamHandler struct {
	store *store.Store
}

func NewExamHandler(s *store.Store) *ExamHandler {
	return &ExamHandler{store: s}
}

func (handler *ExamHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.store.Exams())
}

func (handler *ExamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var exam models.Exam
	if !decodeJSON(w, r, &exam) {
		return
	}
	if exam.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if exam.Subject == "" {
		writeError(w, http.StatusBadRequest, "subject is required")
		return
	}

	if handler.store.AddExam(r.Context(), exam) == store.OutcomeAlreadyExists {
		writeError(w, http.StatusConflict, "exam already exists")
		return
	}
	writeJSON(w, http.StatusCreated, exam)
}

func (handler *ExamHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch store.ExamPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	if handler.store.UpdateExam(r.Context(), chi.URLParam(r, "id"), patch) == store.OutcomeNotFound {
		writeError(w, http.StatusNotFound, "exam not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (handler *ExamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if handler.store.DeleteExam(r.Context(), chi.URLParam(r, "id")) == store.OutcomeNotFound {
		writeError(w, http.StatusNotFound, "exam not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportICS turns the events of an uploaded .ics file into exams. Events
// whose id collides with an existing exam are skipped.
func (handler *ExamHandler) ImportICS(w http.ResponseWriter, r *http.Request) {
	exams, err := services.ParseExamsFromICS(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid iCalendar data: "+err.Error())
		return
	}

	imported := 0
	for _, exam := range exams {
		if handler.store.AddExam(r.Context(), exam) == store.OutcomeAdded {
			imported++
		}
	}

	slog.Info("imported exams from ics", "events", len(exams), "imported", imported)
	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}
