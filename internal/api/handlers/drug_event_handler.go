package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/repositories"
)

const recentWindowDays = 10

// DrugEventHandler handles drug event HTTP requests
type DrugEventHandler struct {
	eventRepo repositories.DrugEventRepository
}

// NewDrugEventHandler creates a new drug event handler
func NewDrugEventHandler(eventRepo repositories.DrugEventRepository) *DrugEventHandler {
	return &DrugEventHandler{
		eventRepo: eventRepo,
	}
}

// ListDrugEvents handles GET /api/drug-events
func (h *DrugEventHandler) ListDrugEvents(w http.ResponseWriter, r *http.Request) {
	filter := repositories.DrugEventFilter{
		EventType: entities.EventType(r.URL.Query().Get("event_type")),
		Source:    entities.DataSource(r.URL.Query().Get("source")),
		Limit:     queryInt(r, "limit", 50),
		Offset:    queryInt(r, "offset", 0),
	}

	if strings.EqualFold(r.URL.Query().Get("recent_only"), "true") {
		cutoff := time.Now().AddDate(0, 0, -recentWindowDays)
		filter.PublishedAfter = &cutoff
	}

	events, err := h.eventRepo.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"drug_events": events,
		"count":       len(events),
	})
}

// GetDrugEvent handles GET /api/drug-events/{id}
func (h *DrugEventHandler) GetDrugEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "drug event ID is required")
		return
	}

	event, err := h.eventRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}
