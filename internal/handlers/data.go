package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/GhaliAmli/student-focus/internal/services"
	"github.com/GhaliAmli/student-focus/internal/store"
)

// DataHandler covers the whole-dataset surface: snapshot, analytics,
// backup export, import, and clear.
type DataHandler struct {
	store *store.Store
}

func NewDataHandler(s *store.Store) *DataHandler {
	return &DataHandler{store: s}
}

func (handler *DataHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.store.Snapshot())
}

func (handler *DataHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	overview := services.BuildOverview(handler.store.Tasks(), handler.store.StudySessions(), time.Now())
	writeJSON(w, http.StatusOK, overview)
}

// Export serves the backup file, named with the current date.
func (handler *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("studentfocus-backup-%s.json", time.Now().Format(time.DateOnly))
	w.Header().Set("Content-Disposition", `attachment; filename=`+filename)
	writeJSON(w, http.StatusOK, handler.store.ExportData())
}

func (handler *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	var payload store.ImportPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	summary := handler.store.ImportData(r.Context(), payload)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"imported": summary,
		"message": fmt.Sprintf(
			"Successfully imported %d tasks, %d exams, %d study plans, and %d sessions",
			summary.Tasks, summary.Exams, summary.StudyPlans, summary.StudySessions),
	})
}

// Clear resets everything and returns the pre-clear backup so the caller
// can offer an undo.
func (handler *DataHandler) Clear(w http.ResponseWriter, r *http.Request) {
	backup := handler.store.ClearAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "cleared",
		"backup": backup,
	})
}
