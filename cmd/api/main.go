package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/cache"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/database"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/gif"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/govpl"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/pubmed"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/urpl"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/api/handlers"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/api/middleware"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/api/routes"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/enrichment"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/services"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/providers"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/postgres"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/redis"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/scaleway"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client; the API works without caching.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Println("Redis client initialized successfully")
	}

	// Initialize adapters
	eventRepo := database.NewDrugEventAdapter(pgClient)
	regulationRepo := database.NewLegalRegulationAdapter(pgClient)
	newsRepo := database.NewMedicalNewsAdapter(pgClient)
	drugRepo := database.NewDrugAdapter(pgClient)

	// Text generation is optional; without it records are stored
	// without AI enrichment.
	var gateway *enrichment.Gateway
	generator, err := scaleway.NewClient(&cfg.Scaleway)
	if err != nil {
		log.Printf("Warning: text generation disabled: %v", err)
		gateway = enrichment.NewGateway(nil)
	} else {
		gateway = enrichment.NewGateway(generator)
	}

	// Ingestion services
	drugEventService := services.NewDrugEventIngestionService(
		gif.NewClient(cfg.Sources.GIFBaseURL, cfg.Sources.GIFRetentionDays),
		urpl.NewClient(cfg.Sources.URPLBaseURL, cfg.Sources.URPLPageSize),
		services.NewDrugEventUpserter(eventRepo),
		gateway,
	)
	regulationService := services.NewRegulationIngestionService(
		govpl.NewClient(cfg.Sources.GovPLBaseURL, cfg.Sources.GovPLPageID),
		services.NewRegulationUpserter(regulationRepo),
		gateway,
	)
	newsService := services.NewNewsIngestionService(
		pubmed.NewClient(cfg.Sources.PubMedBaseURL, cfg.Sources.PubMedLimit),
		services.NewNewsUpserter(newsRepo),
		gateway,
	)
	runner := services.NewScrapeRunner(drugEventService, regulationService, newsService, eventRepo)

	// Handlers
	drugEventHandler := handlers.NewDrugEventHandler(eventRepo)
	regulationHandler := handlers.NewRegulationHandler(regulationRepo)
	newsHandler := handlers.NewNewsHandler(newsRepo)
	drugHandler := handlers.NewDrugHandler(drugRepo)
	ingestionHandler := handlers.NewIngestionHandler(runner)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(
		drugEventHandler,
		regulationHandler,
		newsHandler,
		drugHandler,
		ingestionHandler,
		cacheMiddleware,
		metrics,
		cfg.Auth.APIToken,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
