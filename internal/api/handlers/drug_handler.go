package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/repositories"
)

// DrugHandler handles drug registry HTTP requests
type DrugHandler struct {
	drugRepo repositories.DrugRepository
}

// NewDrugHandler creates a new drug handler
func NewDrugHandler(drugRepo repositories.DrugRepository) *DrugHandler {
	return &DrugHandler{
		drugRepo: drugRepo,
	}
}

// ListDrugs handles GET /api/drugs
func (h *DrugHandler) ListDrugs(w http.ResponseWriter, r *http.Request) {
	filter := repositories.DrugFilter{
		ProductName:     r.URL.Query().Get("product_name"),
		CommonName:      r.URL.Query().Get("common_name"),
		ActiveSubstance: r.URL.Query().Get("active_substance"),
		Limit:           queryInt(r, "limit", 50),
		Offset:          queryInt(r, "offset", 0),
	}

	drugs, err := h.drugRepo.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"drugs": drugs,
		"count": len(drugs),
	})
}

// GetDrug handles GET /api/drugs/{id}
func (h *DrugHandler) GetDrug(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "drug ID is required")
		return
	}

	drug, err := h.drugRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, drug)
}

type drugNameSearchRequest struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

// SearchDrugs handles POST /api/drugs/search. The name is matched against
// the product name, common name and authorisation holder.
func (h *DrugHandler) SearchDrugs(w http.ResponseWriter, r *http.Request) {
	var req drugNameSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	drugs, err := h.drugRepo.SearchByName(r.Context(), req.Name, req.Limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"drugs": drugs,
		"count": len(drugs),
	})
}

type drugSubstanceSearchRequest struct {
	Substance string `json:"substance"`
	Limit     int    `json:"limit"`
}

// SearchDrugsBySubstance handles POST /api/drugs/search-by-substance
func (h *DrugHandler) SearchDrugsBySubstance(w http.ResponseWriter, r *http.Request) {
	var req drugSubstanceSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Substance = strings.TrimSpace(req.Substance)
	if req.Substance == "" {
		respondWithError(w, http.StatusBadRequest, "substance is required")
		return
	}

	drugs, err := h.drugRepo.SearchBySubstance(r.Context(), req.Substance, req.Limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"drugs": drugs,
		"count": len(drugs),
	})
}
