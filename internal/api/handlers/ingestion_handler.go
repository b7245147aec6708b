package handlers

import (
	"net/http"
	"strings"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/services"
)

// IngestionHandler exposes the scrape runner over HTTP
type IngestionHandler struct {
	runner *services.ScrapeRunner
}

// NewIngestionHandler creates a new ingestion handler
func NewIngestionHandler(runner *services.ScrapeRunner) *IngestionHandler {
	return &IngestionHandler{
		runner: runner,
	}
}

// TriggerIngestion handles POST /api/ingestion/run. By default the run
// is skipped when today's scrape already happened; force=true overrides.
func (h *IngestionHandler) TriggerIngestion(w http.ResponseWriter, r *http.Request) {
	force := strings.EqualFold(r.URL.Query().Get("force"), "true")

	var summaries []*services.IngestionSummary
	var err error
	if force {
		summaries = h.runner.RunAll(r.Context())
	} else {
		summaries, err = h.runner.RunAllIfNeeded(r.Context())
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		if summaries == nil {
			respondWithJSON(w, http.StatusOK, map[string]interface{}{
				"status": "skipped",
				"reason": "already ran today",
			})
			return
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "completed",
		"summaries": summaries,
	})
}

// GetIngestionStatus handles GET /api/ingestion/status
func (h *IngestionHandler) GetIngestionStatus(w http.ResponseWriter, r *http.Request) {
	ran, err := h.runner.RanToday(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ran_today": ran,
	})
}
