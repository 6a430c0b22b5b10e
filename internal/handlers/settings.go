package handlers

import (
	"net/http"

	"github.com/GhaliAmli/student-focus/internal/store"
)

type SettingsHandler struct {
	store *store.Store
}

func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

func (handler *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.store.Settings())
}

func (handler *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch store.SettingsPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	writeJSON(w, http.StatusOK, handler.store.UpdateSettings(r.Context(), patch))
}

type GamificationHandler struct {
	store *store.Store
}

func NewGamificationHandler(s *store.Store) *GamificationHandler {
	return &GamificationHandler{store: s}
}

func (handler *GamificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.store.Gamification())
}
