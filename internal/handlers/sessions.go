package handlers

import (
	"net/http"

	"github.com/GhaliAmli/student-focus/internal/models"
	"github.com/GhaliAmli/student-focus/internal/store"
	"github.com/go-chi/chi/v5"
)

type SessionHandler struct {
	store *store.Store
}

func NewSessionHandler(s *store.Store) *SessionHandler {
	return &SessionHandler{store: s}
}

func (handler *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.store.StudySessions())
}

func (handler *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var session models.StudySession
	if !decodeJSON(w, r, &session) {
		return
	}
	if session.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if session.Duration < 0 {
		writeError(w, http.StatusBadRequest, "duration must be non-negative")
		return
	}

	if handler.store.AddStudySession(r.Context(), session) == store.OutcomeAlreadyExists {
		writeError(w, http.StatusConflict, "session already exists")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (handler *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if handler.store.DeleteStudySession(r.Context(), chi.URLParam(r, "id")) == store.OutcomeNotFound {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
