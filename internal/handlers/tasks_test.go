package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GhaliAmli/student-focus/internal/models"
	"github.com/GhaliAmli/student-focus/internal/repository"
	"github.com/GhaliAmli/student-focus/internal/store"
	"github.com/GhaliAmli/student-focus/internal/testutil"
	"github.com/go-chi/chi/v5"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	database := testutil.NewTestDatabase(t)
	s := store.New(repository.NewStateRepository(database))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("loading store: %v", err)
	}
	return s
}

func taskRouter(s *store.Store) *chi.Mux {
	handler := NewTaskHandler(s)
	router := chi.NewRouter()
	router.Get("/api/tasks", handler.List)
	router.Post("/api/tasks", handler.Create)
	router.Put("/api/tasks/order", handler.Reorder)
	router.Patch("/api/tasks/{id}", handler.Update)
	router.Post("/api/tasks/{id}/toggle", handler.Toggle)
	router.Delete("/api/tasks/{id}", handler.Delete)
	return router
}

func TestCreateTask(t *testing.T) {
	s := newTestStore(t)
	router := taskRouter(s)

	body := `{"id":"1","title":"Read chapter 8","dueDate":"2025-11-20T00:00:00Z","priority":"high","difficulty":"hard","category":"Physics"}`
	request := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if len(s.Tasks()) != 1 {
		t.Fatalf("task not stored")
	}
}

func TestCreateTask_DuplicateIsConflict(t *testing.T) {
	s := newTestStore(t)
	router := taskRouter(s)

	body := `{"id":"1","title":"First","priority":"low","difficulty":"easy","category":"Math"}`
	request := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	router.ServeHTTP(httptest.NewRecorder(), request)

	request = httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate id, got %d", recorder.Code)
	}
}

func TestCreateTask_RejectsMalformedJSON(t *testing.T) {
	s := newTestStore(t)
	router := taskRouter(s)

	request := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader("{not json"))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", recorder.Code)
	}
	if len(s.Tasks()) != 0 {
		t.Error("malformed payload must not mutate state")
	}
}

func TestToggleTask_ReturnsAward(t *testing.T) {
	s := newTestStore(t)
	s.AddTask(context.Background(), models.Task{
		ID: "1", Title: "Task", DueDate: time.Now(),
		Priority: models.PriorityHigh, Difficulty: models.DifficultyHard, Category: "Math",
	})
	router := taskRouter(s)

	request := httptest.NewRequest(http.MethodPost, "/api/tasks/1/toggle", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var result store.ToggleResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !result.Completed {
		t.Error("expected completed true")
	}
	if result.Award == nil || result.Award.Points != 40 {
		t.Errorf("expected 40-point award, got %+v", result.Award)
	}
}

func TestToggleTask_NotFoundIs404(t *testing.T) {
	router := taskRouter(newTestStore(t))

	request := httptest.NewRequest(http.MethodPost, "/api/tasks/missing/toggle", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", recorder.Code)
	}
}

func TestUpdateTask_Patch(t *testing.T) {
	s := newTestStore(t)
	s.AddTask(context.Background(), models.Task{ID: "1", Title: "Old", Priority: models.PriorityLow, Difficulty: models.DifficultyEasy, Category: "Math", DueDate: time.Now()})
	router := taskRouter(s)

	request := httptest.NewRequest(http.MethodPatch, "/api/tasks/1", strings.NewReader(`{"title":"New"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if got := s.Tasks()[0]; got.Title != "New" || got.Priority != models.PriorityLow {
		t.Errorf("patch applied wrong: %+v", got)
	}
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	s.AddTask(context.Background(), models.Task{ID: "1", Title: "Task", Category: "Math", DueDate: time.Now()})
	router := taskRouter(s)

	request := httptest.NewRequest(http.MethodDelete, "/api/tasks/1", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
	if len(s.Tasks()) != 0 {
		t.Error("task not deleted")
	}

	request = httptest.NewRequest(http.MethodDelete, "/api/tasks/1", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected 404 on repeat delete, got %d", recorder.Code)
	}
}

func TestReorderTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.AddTask(ctx, models.Task{ID: "1", Title: "A", Category: "Math", DueDate: time.Now()})
	s.AddTask(ctx, models.Task{ID: "2", Title: "B", Category: "Math", DueDate: time.Now()})
	router := taskRouter(s)

	tasks := s.Tasks()
	payload, _ := json.Marshal([]models.Task{tasks[1], tasks[0]})
	request := httptest.NewRequest(http.MethodPut, "/api/tasks/order", strings.NewReader(string(payload)))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if got := s.Tasks(); got[0].ID != "2" || got[1].ID != "1" {
		t.Errorf("order not replaced: %v, %v", got[0].ID, got[1].ID)
	}
}
