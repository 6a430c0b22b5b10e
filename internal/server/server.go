package server

import (
	"log/slog"
	"net/http"

	"github.com/GhaliAmli/student-focus/internal/config"
	"github.com/GhaliAmli/student-focus/internal/handlers"
	"github.com/GhaliAmli/student-focus/internal/store"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(appStore *store.Store, cfg config.Config) *Server {
	taskHandler := handlers.NewTaskHandler(appStore)
	examHandler := handlers.NewExamHandler(appStore)
	sessionHandler := handlers.NewSessionHandler(appStore)
	planHandler := handlers.NewPlanHandler(appStore)
	settingsHandler := handlers.NewSettingsHandler(appStore)
	gamificationHandler := handlers.NewGamificationHandler(appStore)
	dataHandler := handlers.NewDataHandler(appStore)
	calendarHandler := handlers.NewCalendarHandler(appStore)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Get("/calendar.ics", calendarHandler.Feed)

	router.Route("/api", func(r chi.Router) {
		r.Get("/state", dataHandler.State)
		r.Get("/analytics", dataHandler.Analytics)
		r.Get("/export", dataHandler.Export)
		r.Post("/import", dataHandler.Import)
		r.Post("/import/ical", examHandler.ImportICS)
		r.Post("/data/clear", dataHandler.Clear)

		r.Get("/tasks", taskHandler.List)
		r.Post("/tasks", taskHandler.Create)
		r.Put("/tasks/order", taskHandler.Reorder)
		r.Patch("/tasks/{id}", taskHandler.Update)
		r.Post("/tasks/{id}/toggle", taskHandler.Toggle)
		r.Delete("/tasks/{id}", taskHandler.Delete)

		r.Get("/exams", examHandler.List)
		r.Post("/exams", examHandler.Create)
		r.Patch("/exams/{id}", examHandler.Update)
		r.Delete("/exams/{id}", examHandler.Delete)

		r.Get("/sessions", sessionHandler.List)
		r.Post("/sessions", sessionHandler.Create)
		r.Delete("/sessions/{id}", sessionHandler.Delete)

		r.Get("/plans", planHandler.List)
		r.Post("/plans", planHandler.Create)
		r.Post("/plans/generate", planHandler.Generate)
		r.Delete("/plans/{id}", planHandler.Delete)

		r.Get("/settings", settingsHandler.Get)
		r.Patch("/settings", settingsHandler.Update)

		r.Get("/gamification", gamificationHandler.Get)
	})

	return &Server{
		router: router,
		config: cfg,
	}
}

func (server *Server) Router() http.Handler {
	return server.router
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}
