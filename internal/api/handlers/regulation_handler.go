package handlers

import (
	"net/http"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/repositories"
)

// RegulationHandler handles legal regulation HTTP requests
type RegulationHandler struct {
	regulationRepo repositories.LegalRegulationRepository
}

// NewRegulationHandler creates a new regulation handler
func NewRegulationHandler(regulationRepo repositories.LegalRegulationRepository) *RegulationHandler {
	return &RegulationHandler{
		regulationRepo: regulationRepo,
	}
}

// ListRegulations handles GET /api/regulations
func (h *RegulationHandler) ListRegulations(w http.ResponseWriter, r *http.Request) {
	filter := repositories.LegalRegulationFilter{
		Responsible: r.URL.Query().Get("responsible"),
		Limit:       queryInt(r, "limit", 50),
		Offset:      queryInt(r, "offset", 0),
	}

	regulations, err := h.regulationRepo.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"regulations": regulations,
		"count":       len(regulations),
	})
}

// GetRegulation handles GET /api/regulations/{id}
func (h *RegulationHandler) GetRegulation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "regulation ID is required")
		return
	}

	regulation, err := h.regulationRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, regulation)
}
