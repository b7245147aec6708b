package handlers

import (
	"net/http"
	"strings"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/repositories"
)

// NewsHandler handles medical news HTTP requests
type NewsHandler struct {
	newsRepo repositories.MedicalNewsRepository
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(newsRepo repositories.MedicalNewsRepository) *NewsHandler {
	return &NewsHandler{
		newsRepo: newsRepo,
	}
}

// ListNews handles GET /api/news
func (h *NewsHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	filter := repositories.MedicalNewsFilter{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}

	if raw := r.URL.Query().Get("translated"); raw != "" {
		translated := strings.EqualFold(raw, "true")
		filter.Translated = &translated
	}

	news, err := h.newsRepo.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"news":  news,
		"count": len(news),
	})
}

// LatestNews handles GET /api/news/latest
func (h *NewsHandler) LatestNews(w http.ResponseWriter, r *http.Request) {
	translated := true
	filter := repositories.MedicalNewsFilter{
		Translated: &translated,
		Limit:      queryInt(r, "limit", 10),
	}

	news, err := h.newsRepo.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"news":  news,
		"count": len(news),
	})
}

// GetNews handles GET /api/news/{id}
func (h *NewsHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "news ID is required")
		return
	}

	news, err := h.newsRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, news)
}
