package handlers

import (
	"net/http"

	"github.com/GhaliAmli/student-focus/internal/models"
	"github.com/GhaliAmli/student-focus/internal/store"
	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	store *store.Store
}

func NewTaskHandler(s *store.Store) *TaskHandler {
	return &TaskHandler{store: s}
}

func (handler *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.store.Tasks())
}

func (handler *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if !decodeJSON(w, r, &task) {
		return
	}
	if task.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if task.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	if handler.store.AddTask(r.Context(), task) == store.OutcomeAlreadyExists {
		writeError(w, http.StatusConflict, "task already exists")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (handler *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch store.TaskPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	id := chi.URLParam(r, "id")
	if handler.store.UpdateTask(r.Context(), id, patch) == store.OutcomeNotFound {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (handler *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	result := handler.store.ToggleTask(r.Context(), chi.URLParam(r, "id"))
	if result.Outcome == store.OutcomeNotFound {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (handler *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if handler.store.DeleteTask(r.Context(), chi.URLParam(r, "id")) == store.OutcomeNotFound {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder replaces the task sequence with the posted one, the drag-end
// contract of the kanban and list views.
func (handler *TaskHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var tasks []models.Task
	if !decodeJSON(w, r, &tasks) {
		return
	}

	handler.store.ReorderTasks(r.Context(), tasks)
	writeJSON(w, http.StatusOK, handler.store.Tasks())
}
