package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/GhaliAmli/student-focus/internal/models"
	"github.com/GhaliAmli/student-focus/internal/services"
	"github.com/GhaliAmli/student-focus/internal/store"
	"github.com/go-chi/chi/v5"
)

type PlanHandler struct {
	store *store.Store
}

func NewPlanHandler(s *store.Store) *PlanHandler {
	return &PlanHandler{store: s}
}

func (handler *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.store.StudyPlans())
}

func (handler *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var plan models.StudyPlan
	if !decodeJSON(w, r, &plan) {
		return
	}
	if plan.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if plan.EndDate.Before(plan.StartDate) {
		writeError(w, http.StatusBadRequest, "end date precedes start date")
		return
	}
	if plan.HoursPerDay <= 0 {
		writeError(w, http.StatusBadRequest, "hours per day must be positive")
		return
	}

	if handler.store.AddStudyPlan(r.Context(), plan) == store.OutcomeAlreadyExists {
		writeError(w, http.StatusConflict, "plan already exists")
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (handler *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if handler.store.DeleteStudyPlan(r.Context(), chi.URLParam(r, "id")) == store.OutcomeNotFound {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Generate runs the planner over the posted exams and stores the result.
func (handler *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var request services.PlanRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	plan, err := services.GeneratePlan(request, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoExams),
			errors.Is(err, services.ErrNonPositiveHours),
			errors.Is(err, services.ErrEndBeforeStart):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to generate plan")
		}
		return
	}

	handler.store.AddStudyPlan(r.Context(), plan)
	writeJSON(w, http.StatusCreated, plan)
}
