package routes

import (
	"net/http"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/api/handlers"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/api/middleware"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	drugEventHandler  *handlers.DrugEventHandler
	regulationHandler *handlers.RegulationHandler
	newsHandler       *handlers.NewsHandler
	drugHandler       *handlers.DrugHandler
	ingestionHandler  *handlers.IngestionHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	apiToken        string
}

// NewRouter creates a new router
func NewRouter(
	drugEventHandler *handlers.DrugEventHandler,
	regulationHandler *handlers.RegulationHandler,
	newsHandler *handlers.NewsHandler,
	drugHandler *handlers.DrugHandler,
	ingestionHandler *handlers.IngestionHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	apiToken string,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		drugEventHandler:  drugEventHandler,
		regulationHandler: regulationHandler,
		newsHandler:       newsHandler,
		drugHandler:       drugHandler,
		ingestionHandler:  ingestionHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		apiToken:        apiToken,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	auth := middleware.AuthMiddleware(r.apiToken)

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Drug event endpoints
	r.mux.Handle("GET /api/drug-events", auth(http.HandlerFunc(r.drugEventHandler.ListDrugEvents)))
	r.mux.Handle("GET /api/drug-events/{id}", auth(http.HandlerFunc(r.drugEventHandler.GetDrugEvent)))

	// Regulation endpoints
	r.mux.HandleFunc("GET /api/regulations", r.regulationHandler.ListRegulations)
	r.mux.HandleFunc("GET /api/regulations/{id}", r.regulationHandler.GetRegulation)

	// News endpoints
	r.mux.HandleFunc("GET /api/news", r.newsHandler.ListNews)
	r.mux.HandleFunc("GET /api/news/latest", r.newsHandler.LatestNews)
	r.mux.HandleFunc("GET /api/news/{id}", r.newsHandler.GetNews)

	// Drug registry endpoints
	r.mux.HandleFunc("GET /api/drugs", r.drugHandler.ListDrugs)
	r.mux.HandleFunc("GET /api/drugs/{id}", r.drugHandler.GetDrug)
	r.mux.HandleFunc("POST /api/drugs/search", r.drugHandler.SearchDrugs)
	r.mux.HandleFunc("POST /api/drugs/search-by-substance", r.drugHandler.SearchDrugsBySubstance)

	// Ingestion endpoints (hydrate the DB from the upstream sources)
	r.mux.Handle("POST /api/ingestion/run", auth(http.HandlerFunc(r.ingestionHandler.TriggerIngestion)))
	r.mux.Handle("GET /api/ingestion/status", auth(http.HandlerFunc(r.ingestionHandler.GetIngestionStatus)))

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	handler = middleware.CORSMiddleware(handler)

	return handler
}
